package money

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/Developer-Chandan-Dev/fund-raising/pkg/errors"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Cents
		wantErr bool
	}{
		{name: "whole dollars", raw: "250", want: 25000},
		{name: "cents", raw: "0.01", want: 1},
		{name: "mixed", raw: "19.99", want: 1999},
		{name: "trailing zeros", raw: "10.50", want: 1050},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-5", wantErr: true},
		{name: "sub cent", raw: "1.005", wantErr: true},
		{name: "not a number", raw: "ten", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace only", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				typed := pkgerrors.As(err)
				require.NotNil(t, typed)
				assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRandomizedSumsAreExact(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		var total Cents
		var expected int64
		for i := 0; i < 200; i++ {
			cents := int64(rng.Intn(999999) + 1)
			amount := Cents(cents)
			parsed, err := ParseAmount(amount.String())
			require.NoError(t, err)
			require.Equal(t, amount, parsed, "round trip must be exact")
			total += parsed
			expected += cents
		}
		require.Equal(t, expected, int64(total), "sum of parsed amounts must not drift")
	}
}

func TestCentsJSON(t *testing.T) {
	payload, err := json.Marshal(Cents(25050))
	require.NoError(t, err)
	assert.Equal(t, "250.5", string(payload))

	var c Cents
	require.NoError(t, json.Unmarshal([]byte(`100`), &c))
	assert.Equal(t, Cents(10000), c)

	require.NoError(t, json.Unmarshal([]byte(`"42.25"`), &c))
	assert.Equal(t, Cents(4225), c)

	require.Error(t, json.Unmarshal([]byte(`-1`), &c))
	require.Error(t, json.Unmarshal([]byte(`"abc"`), &c))
}

func TestProgressClamped(t *testing.T) {
	assert.Equal(t, 25.0, Progress(25000, 100000))
	assert.Equal(t, 100.0, Progress(150000, 100000), "display progress clamps at 100")
	assert.Equal(t, 0.0, Progress(0, 100000))
	assert.Equal(t, 0.0, Progress(100, 0), "zero goal yields zero progress")
}
