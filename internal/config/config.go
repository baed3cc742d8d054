package config

// EditOptions carries the raw, possibly partial input collected by the
// CLI layer. String fields are left empty when the user supplied
// nothing; the resolver fills them from defaults or by prompting.
type EditOptions struct {
	InputPath  string
	OutputDir  string
	StartTime  string
	Duration   string
	Speed      string
	Rotation   string
	CropRatio  string
	TargetSize string
	Quality    string

	// SmallestFile forces the verylow quality preset and the slow,
	// bitrate-capped encoder profile.
	SmallestFile bool

	// AssumeYes skips interactive prompting and accepts every default.
	AssumeYes bool

	Verbose bool
}
