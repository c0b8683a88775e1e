package mask_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/rise-and-shine/filedrop/pkg/mask"
)

// newOrderedMap builds an ordered map from alternating key-value pairs.
func newOrderedMap(pairs ...any) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()
	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i].(string)
		om.Set(key, pairs[i+1])
	}
	return om
}

func assertOrderedMapEqual(t *testing.T, expected, actual *orderedmap.OrderedMap[string, any]) {
	t.Helper()

	assert.Equal(t, expected.Len(), actual.Len(), "maps have different lengths")

	expectedPair := expected.Oldest()
	actualPair := actual.Oldest()

	for expectedPair != nil && actualPair != nil {
		assert.Equal(t, expectedPair.Key, actualPair.Key, "key mismatch")
		assert.Equal(t, expectedPair.Value, actualPair.Value, "value mismatch for key %s", expectedPair.Key)

		expectedPair = expectedPair.Next()
		actualPair = actualPair.Next()
	}
}

func TestStructToOrdMap_NilInput(t *testing.T) {
	assert.Nil(t, mask.StructToOrdMap(nil))
}

func TestStructToOrdMap(t *testing.T) {
	type upload struct {
		OriginalName string `json:"original_name"`
		DeclaredSize int64  `json:"declared_size"`
	}

	type alertCfg struct {
		Provider string `yaml:"provider"`
		BotToken string `yaml:"bot_token" mask:"true"`
	}

	type serverCfg struct {
		Host  string   `yaml:"host"`
		Port  int      `yaml:"port"`
		Alert alertCfg `yaml:"alert"`
	}

	tests := []struct {
		name     string
		input    any
		expected *orderedmap.OrderedMap[string, any]
	}{
		{
			name:  "plain struct without masked fields",
			input: upload{OriginalName: "report.pdf", DeclaredSize: 1024},
			expected: newOrderedMap(
				"original_name", "report.pdf",
				"declared_size", int64(1024),
			),
		},
		{
			name:  "pointer input",
			input: &upload{OriginalName: "notes.txt", DeclaredSize: 12},
			expected: newOrderedMap(
				"original_name", "notes.txt",
				"declared_size", int64(12),
			),
		},
		{
			name: "masked string replaces value",
			input: alertCfg{
				Provider: "telegram",
				BotToken: "123456:secret",
			},
			expected: newOrderedMap(
				"provider", "telegram",
				"bot_token", "***masked-string***",
			),
		},
		{
			name: "masked zero value passes through",
			input: alertCfg{
				Provider: "noop",
				BotToken: "",
			},
			expected: newOrderedMap(
				"provider", "noop",
				"bot_token", "",
			),
		},
		{
			name: "nested struct flattened with dotted keys",
			input: serverCfg{
				Host:  "0.0.0.0",
				Port:  8080,
				Alert: alertCfg{Provider: "discord", BotToken: "tok"},
			},
			expected: newOrderedMap(
				"host", "0.0.0.0",
				"port", 8080,
				"alert.provider", "discord",
				"alert.bot_token", "***masked-string***",
			),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := mask.StructToOrdMap(tc.input)
			assertOrderedMapEqual(t, tc.expected, result)
		})
	}
}

func TestStructToOrdMap_MaskedKinds(t *testing.T) {
	type cfg struct {
		Count   int               `mask:"true"`
		Ratio   float64           `mask:"true"`
		Open    bool              `mask:"true"`
		IDs     []int             `mask:"true"`
		Headers map[string]string `mask:"true"`
	}

	result := mask.StructToOrdMap(cfg{
		Count:   3,
		Ratio:   0.5,
		Open:    true,
		IDs:     []int{1, 2},
		Headers: map[string]string{"k": "v"},
	})

	expected := newOrderedMap(
		"Count", "***masked-int***",
		"Ratio", "***masked-float***",
		"Open", "***masked-bool***",
		"IDs", "***masked-slice***",
		"Headers", "***masked-map***",
	)
	assertOrderedMapEqual(t, expected, result)
}

func TestStructToOrdMap_NilPointerMasked(t *testing.T) {
	type cfg struct {
		Token *string `mask:"true"`
	}

	result := mask.StructToOrdMap(cfg{Token: nil})

	val, ok := result.Get("Token")
	assert.True(t, ok)
	assert.Nil(t, val)
}

func TestStructToOrdMap_SkipsExcludedAndUnexported(t *testing.T) {
	type req struct {
		Visible string `json:"visible"`
		Skipped string `json:"-"`
		hidden  string
	}

	result := mask.StructToOrdMap(req{Visible: "yes", Skipped: "no", hidden: "no"})

	expected := newOrderedMap("visible", "yes")
	assertOrderedMapEqual(t, expected, result)
}

func TestStructToOrdMap_PreservesFieldOrder(t *testing.T) {
	type req struct {
		Z string
		A string
		M string
	}

	result := mask.StructToOrdMap(req{Z: "z", A: "a", M: "m"})

	// Struct declaration order, not alphabetical.
	expected := newOrderedMap(
		"Z", "z",
		"A", "a",
		"M", "m",
	)
	assertOrderedMapEqual(t, expected, result)
}
