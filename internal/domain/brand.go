package domain

// BrandKit supplies brand identity values templates defer to.
type BrandKit struct {
	UserID         string
	PrimaryColor   string
	SecondaryColor string
	WatermarkText  string
	LogoURL        string
}
