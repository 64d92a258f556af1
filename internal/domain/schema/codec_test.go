package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	reg, err := NewRegistry(testDefinition())
	require.NoError(t, err)
	return NewCodec(reg)
}

func TestCodec_EncodeValue(t *testing.T) {
	c := testCodec(t)
	f, err := c.Registry().Field("Transport Mode")
	require.NoError(t, err)

	// Sorted vocabulary: Rail=0, Ship=1, Truck=2.
	assert.Equal(t, 0.0, c.EncodeValue(f, lca.Categorical("Rail")))
	assert.Equal(t, 1.0, c.EncodeValue(f, lca.Categorical("Ship")))
	assert.Equal(t, 2.0, c.EncodeValue(f, lca.Categorical("Truck")))

	assert.Equal(t, lca.MissingCode, c.EncodeValue(f, lca.Categorical("Hovercraft")))
	assert.Equal(t, lca.MissingCode, c.EncodeValue(f, lca.Missing()))
	assert.Equal(t, lca.MissingCode, c.EncodeValue(f, lca.Numeric(1)), "a bare number is not a label")
}

func TestCodec_DecodeValue(t *testing.T) {
	c := testCodec(t)
	f, err := c.Registry().Field("Transport Mode")
	require.NoError(t, err)

	assert.Equal(t, "Rail", c.DecodeValue(f, 0))
	assert.Equal(t, "Truck", c.DecodeValue(f, 2))

	// Model output is continuous; round to nearest index first.
	assert.Equal(t, "Ship", c.DecodeValue(f, 1.4))
	assert.Equal(t, "Truck", c.DecodeValue(f, 1.6))
	assert.Equal(t, "Rail", c.DecodeValue(f, -0.4))

	// Out of range, negative included, never wraps around.
	assert.Equal(t, lca.UnknownLabel, c.DecodeValue(f, 3))
	assert.Equal(t, lca.UnknownLabel, c.DecodeValue(f, -1))
	assert.Equal(t, lca.UnknownLabel, c.DecodeValue(f, 250))
	assert.Equal(t, lca.UnknownLabel, c.DecodeValue(f, math.NaN()))
	assert.Equal(t, lca.UnknownLabel, c.DecodeValue(f, math.Inf(1)))
}

func TestCodec_RoundTrip(t *testing.T) {
	c := testCodec(t)
	f, err := c.Registry().Field("Energy Input Type")
	require.NoError(t, err)

	for i, label := range f.Classes {
		code := c.EncodeValue(f, lca.Categorical(label))
		assert.Equal(t, float64(i), code)
		assert.Equal(t, label, c.DecodeValue(f, code))
	}
	assert.Equal(t, lca.MissingCode, c.EncodeValue(f, lca.Categorical(lca.UnknownLabel)),
		"the sentinel label is never a vocabulary member")
}

func TestCodec_EncodeByName(t *testing.T) {
	c := testCodec(t)

	code, err := c.Encode("Transport Mode", lca.Categorical("Ship"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, code)

	_, err = c.Encode("Warp Drive", lca.Categorical("Ship"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownField))

	_, err = c.Encode("Transport Distance (km)", lca.Categorical("Ship"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownField))
}

func TestCodec_DecodeByName(t *testing.T) {
	c := testCodec(t)

	label, err := c.Decode("Transport Mode", 2)
	require.NoError(t, err)
	assert.Equal(t, "Truck", label)

	_, err = c.Decode("Transport Distance (km)", 2)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownField))
}

func TestCodec_EncodeRecord(t *testing.T) {
	c := testCodec(t)

	enc, err := c.EncodeRecord([]lca.Value{
		lca.Categorical("Ship"),
		lca.Numeric(320.5),
		lca.Missing(),
	})
	require.NoError(t, err)
	require.Len(t, enc, 3)

	assert.Equal(t, lca.FilledCell(1), enc[0])
	assert.Equal(t, lca.FilledCell(320.5), enc[1])
	assert.True(t, enc[2].Missing, "missing categorical cells stay flagged for the imputer")
}

func TestCodec_EncodeRecord_Sentinels(t *testing.T) {
	c := testCodec(t)

	enc, err := c.EncodeRecord([]lca.Value{
		lca.Categorical("Hovercraft"), // present but off-vocabulary
		lca.Missing(),                 // absent numeric
		lca.Numeric(7),                // number where a label belongs
	})
	require.NoError(t, err)

	assert.Equal(t, lca.FilledCell(lca.MissingCode), enc[0],
		"an unrecognised label is observed as the -1 sentinel, not missing")
	assert.True(t, enc[1].Missing)
	assert.Equal(t, lca.FilledCell(lca.MissingCode), enc[2])
}

func TestCodec_EncodeRecord_WidthMismatch(t *testing.T) {
	c := testCodec(t)
	_, err := c.EncodeRecord([]lca.Value{lca.Categorical("Ship")})
	assert.True(t, errors.IsCode(err, errors.ErrCodeRecordNotAligned))
}

func TestCodec_DecodeRecord(t *testing.T) {
	c := testCodec(t)

	values, err := c.DecodeRecord(lca.EncodedRecord{
		lca.FilledCell(2.2),
		lca.FilledCell(144),
		lca.FilledCell(-1),
	})
	require.NoError(t, err)

	assert.True(t, values[0].Equal(lca.Categorical("Truck")))
	assert.True(t, values[1].Equal(lca.Numeric(144)))
	assert.True(t, values[2].Equal(lca.Categorical(lca.UnknownLabel)))
}

func TestCodec_DecodeRecord_MissingPassesThrough(t *testing.T) {
	c := testCodec(t)

	values, err := c.DecodeRecord(lca.EncodedRecord{
		lca.MissingCell(),
		lca.MissingCell(),
		lca.FilledCell(0),
	})
	require.NoError(t, err)
	assert.True(t, values[0].IsMissing())
	assert.True(t, values[1].IsMissing())
}

func TestCodec_DecodeRecord_WidthMismatch(t *testing.T) {
	c := testCodec(t)
	_, err := c.DecodeRecord(lca.EncodedRecord{lca.FilledCell(0)})
	assert.True(t, errors.IsCode(err, errors.ErrCodeRecordNotAligned))
}

func TestCodec_EncodeDecodeRecordRoundTrip(t *testing.T) {
	c := testCodec(t)
	in := []lca.Value{
		lca.Categorical("Rail"),
		lca.Numeric(55.25),
		lca.Categorical("Natural Gas"),
	}

	enc, err := c.EncodeRecord(in)
	require.NoError(t, err)
	out, err := c.DecodeRecord(enc)
	require.NoError(t, err)

	for i := range in {
		assert.True(t, out[i].Equal(in[i]), "column %d", i)
	}
}

//Personal.AI order the ending
