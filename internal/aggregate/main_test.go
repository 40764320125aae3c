package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "out/plot_voxels.count_5m.asc.gz", DefaultOutput("out/plot_voxels.count.asc.gz", 5))
	assert.Equal(t, "voxels.intensity_10m.asc", DefaultOutput("voxels.intensity.asc", 10))
}
