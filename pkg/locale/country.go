package locale

// Country ties a phone dialing code to the ISO country it most likely
// belongs to.
type Country struct {
	Code       string // ISO 3166-1 alpha-2 country code (e.g., "DE", "US")
	Name       string // Human-readable country name
	DialPrefix string // E.164 dialing code, including the plus
}

// Countries is ordered longest prefix first so a three-digit dialing
// code always wins over a shorter code it extends.
var Countries = []Country{
	{Code: "PT", Name: "Portugal", DialPrefix: "+351"},
	{Code: "IE", Name: "Ireland", DialPrefix: "+353"},
	{Code: "CZ", Name: "Czechia", DialPrefix: "+420"},
	{Code: "IL", Name: "Israel", DialPrefix: "+972"},
	{Code: "NL", Name: "Netherlands", DialPrefix: "+31"},
	{Code: "BE", Name: "Belgium", DialPrefix: "+32"},
	{Code: "FR", Name: "France", DialPrefix: "+33"},
	{Code: "ES", Name: "Spain", DialPrefix: "+34"},
	{Code: "IT", Name: "Italy", DialPrefix: "+39"},
	{Code: "CH", Name: "Switzerland", DialPrefix: "+41"},
	{Code: "AT", Name: "Austria", DialPrefix: "+43"},
	{Code: "GB", Name: "United Kingdom", DialPrefix: "+44"},
	{Code: "DK", Name: "Denmark", DialPrefix: "+45"},
	{Code: "SE", Name: "Sweden", DialPrefix: "+46"},
	{Code: "NO", Name: "Norway", DialPrefix: "+47"},
	{Code: "PL", Name: "Poland", DialPrefix: "+48"},
	{Code: "DE", Name: "Germany", DialPrefix: "+49"},
	{Code: "US", Name: "United States", DialPrefix: "+1"},
}
