package scanner

// Config carries the capture parameters for one scan session.
type Config struct {
	Camera CameraPreference
	Scan   ScanConfig
}

// DefaultConfig mirrors the capture settings of the reference frontend:
// rear camera, 10 fps, 250x250 decode box.
func DefaultConfig() Config {
	return Config{
		Camera: CameraEnvironment,
		Scan: ScanConfig{
			FPS:         10,
			BoxWidth:    250,
			BoxHeight:   250,
			AspectRatio: 1.0,
		},
	}
}
