package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sampleDataset() *Dataset {
	duty := 0.25
	return &Dataset{
		Profile:   "trapezoidal",
		Frequency: 10,
		Cases: []Case{
			NewCase("step",
				mat.NewDense(2, 2, []float64{0, 1, 1, 0}),
				[]float64{0, 0.2},
				&duty,
				mat.NewDense(2, 3, []float64{0, 0.5, 1, 1, 0.5, 0})),
		},
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.json")
	want := sampleDataset()

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	c := got.Cases[0]
	assert.Equal(t, 2, c.Joints())
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{0, 1, 1, 0}), c.Waypoints()))
	r, cols := c.Reference().Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, cols)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "ref.mat"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".json extension")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"profile":"spline","frequency":10,"cases":[{"name":"x","times":[0,1],"waypoints":[[0]],"trajectory":[[0]]}]}`), 0o600))
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrInvalidDataset)
	assert.Contains(t, err.Error(), `case "x" waypoints`)

	joints := filepath.Join(dir, "joints.json")
	require.NoError(t, os.WriteFile(joints, []byte(`{"profile":"spline","frequency":10,"cases":[{"name":"y","times":[0,1],"waypoints":[[0,1],[1,0]],"trajectory":[[0,0.5,1]]}]}`), 0o600))
	_, err = Load(joints)
	require.ErrorIs(t, err, ErrInvalidDataset)
	assert.Contains(t, err.Error(), `case "y" trajectory has 1 joints`)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte(`[`), 0o600))
	_, err = Load(garbage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse dataset JSON")
}

func TestValidate(t *testing.T) {
	d := sampleDataset()
	require.NoError(t, d.Validate())

	d.Cases[0].TrajectoryRows[1] = []float64{0}
	require.ErrorIs(t, d.Validate(), ErrInvalidDataset)

	d = sampleDataset()
	d.Cases[0].TrajectoryRows = nil
	require.ErrorIs(t, d.Validate(), ErrInvalidDataset)

	d = sampleDataset()
	d.Cases[0].TrajectoryRows = d.Cases[0].TrajectoryRows[:1]
	err := d.Validate()
	require.ErrorIs(t, err, ErrInvalidDataset)
	assert.Contains(t, err.Error(), "trajectory has 1 joints, waypoints have 2")

	d = sampleDataset()
	d.Frequency = 0
	require.ErrorIs(t, d.Validate(), ErrInvalidDataset)

	d = sampleDataset()
	d.Profile = ""
	require.ErrorIs(t, d.Validate(), ErrInvalidDataset)
}

func TestAppendReplacesByName(t *testing.T) {
	d := sampleDataset()
	replacement := d.Cases[0]
	replacement.Times = []float64{0, 0.3}

	d.Append(replacement)
	require.Len(t, d.Cases, 1)
	assert.Equal(t, []float64{0, 0.3}, d.Cases[0].Times)

	other := replacement
	other.Name = "other"
	d.Append(other)
	assert.Len(t, d.Cases, 2)
}

func TestLoadOrNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.json")

	d, err := LoadOrNew(path, "spline", 100)
	require.NoError(t, err)
	assert.Equal(t, "spline", d.Profile)
	assert.Empty(t, d.Cases)

	require.NoError(t, Save(path, sampleDataset()))

	d, err = LoadOrNew(path, "trapezoidal", 10)
	require.NoError(t, err)
	assert.Len(t, d.Cases, 1)

	_, err = LoadOrNew(path, "spline", 10)
	require.ErrorIs(t, err, ErrInvalidDataset)
}
