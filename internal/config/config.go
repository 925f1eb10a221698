package config

type AppConfig struct {
	Port        int
	RefPath     string
	CompPath    string
	Endpoint    string
	ViewWidth   int
	ViewHeight  int
	Debug       bool
	DebugFrames int
	DebugWidth  int
	DebugHeight int
	LogEvery    int
}
