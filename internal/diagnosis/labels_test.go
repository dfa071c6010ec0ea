package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLabels_SortedDistinct(t *testing.T) {
	l := NewLabels([]string{"Risco_de_Infeccao", "Dor_Aguda", "Risco_de_Infeccao", "", "Ansiedade"})

	assert.Equal(t, []string{"Ansiedade", "Dor_Aguda", "Risco_de_Infeccao"}, l.Names())
	assert.Equal(t, 3, l.Len())
}

func TestLabels_RoundTrip(t *testing.T) {
	l := NewLabels([]string{"Risco_de_Infeccao", "Impaired_Gas_Exchange"})

	for i := 0; i < l.Len(); i++ {
		name, err := l.Name(i)
		require.NoError(t, err)
		idx, ok := l.Index(name)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}

	name, err := l.Name(0)
	require.NoError(t, err)
	assert.Equal(t, "Impaired_Gas_Exchange", name)
}

func TestLabels_OutOfRange(t *testing.T) {
	l := NewLabels([]string{"A"})

	_, err := l.Name(1)
	assert.Error(t, err)
	_, err = l.Name(-1)
	assert.Error(t, err)

	_, ok := l.Index("B")
	assert.False(t, ok)
}

func TestLabels_NamesIsCopy(t *testing.T) {
	l := NewLabels([]string{"A", "B"})
	names := l.Names()
	names[0] = "Z"

	got, _ := l.Name(0)
	assert.Equal(t, "A", got)
}

func TestDisplaySymptom(t *testing.T) {
	assert.Equal(t, "dispneia aos esforços", DisplaySymptom("Dispneia_aos-Esforços"))
	assert.Equal(t, "Risco de Queda", DisplayName("Risco_de_Queda"))
	assert.Equal(t, "Febre, Tosse Seca", JoinSymptoms([]string{"Febre", "Tosse_Seca"}))
	assert.Equal(t, "", JoinSymptoms(nil))
}
