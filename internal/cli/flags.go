package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	InputFile  string
	ToEnglish  bool
	ListModels bool
	Verbose    bool

	// Credential flags
	SetKey  string
	ShowKey bool

	// Overrides of the configuration file
	Model  string
	Locale string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{}
}
