package lines

// Config holds line detection thresholds
type Config struct {
	// Number of samples taken along a line for projection and verification
	SampleDivisor int `yaml:"sample_divisor" json:"sample_divisor"`

	// Normalized darkness a projection peak must exceed (0-1)
	PeakThreshold float64 `yaml:"peak_threshold" json:"peak_threshold"`

	// Minimum intensity drop between adjacent pixels in an edge slice
	EdgeDelta float64 `yaml:"edge_delta" json:"edge_delta"`

	// Pixels below this intensity count as dark (0-255)
	DarkIntensity float64 `yaml:"dark_intensity" json:"dark_intensity"`

	// Minimum clustering distance in pixels
	MinClusterDistance int `yaml:"min_cluster_distance" json:"min_cluster_distance"`

	// Clustering distance as a fraction of the image dimension
	ClusterFraction float64 `yaml:"cluster_fraction" json:"cluster_fraction"`

	// Pixels searched on each side of a candidate during verification
	VerifyOffset int `yaml:"verify_offset" json:"verify_offset"`

	// Fraction of dark samples a verified line needs (0-1)
	DarkRatio float64 `yaml:"dark_ratio" json:"dark_ratio"`

	// Images with a shorter side below this produce a low confidence warning
	MinReliableSize int `yaml:"min_reliable_size" json:"min_reliable_size"`

	// Whether to draw line indices next to the annotated lines
	Labels bool `yaml:"labels" json:"labels"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		SampleDivisor:      200,
		PeakThreshold:      0.3,
		EdgeDelta:          30,
		DarkIntensity:      160,
		MinClusterDistance: 3,
		ClusterFraction:    0.01,
		VerifyOffset:       5,
		DarkRatio:          0.35,
		MinReliableSize:    200,
		Labels:             false,
	}
}

func (c Config) stride(dim int) int {
	if c.SampleDivisor <= 0 {
		return 1
	}
	return max(1, dim/c.SampleDivisor)
}

func (c Config) clusterThreshold(dim int) int {
	return max(c.MinClusterDistance, int(float64(dim)*c.ClusterFraction))
}
