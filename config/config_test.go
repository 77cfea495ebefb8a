package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleKeymap = `{
  "keyLayers": {
    "Layer1": {
      "CapsLock": "Esc",
      "A": "B"
    },
    "FnLayer1": {
      "Q": "Home"
    }
  },
  "staticColorLayers": {
    "Layer1": {
      "default": "teal",
      "Esc": "red"
    }
  },
  "colorDefinitions": {
    "teal": "0x20b2aa",
    "red": "0xff0000",
    "default": "0x000000"
  }
}`

func writeKeymap(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	profile, err := Load(writeKeymap(t, "keymap.json", sampleKeymap))
	require.NoError(t, err)

	// viper lower-cases map keys, so assert against the folded names
	require.Len(t, profile.KeyLayers, 2)
	require.Equal(t, "Esc", profile.KeyLayers["layer1"]["capslock"])
	require.Equal(t, "B", profile.KeyLayers["layer1"]["a"])
	require.Equal(t, "Home", profile.KeyLayers["fnlayer1"]["q"])

	require.Equal(t, "teal", profile.StaticColorLayers["layer1"]["default"])
	require.Equal(t, "red", profile.StaticColorLayers["layer1"]["esc"])
	require.Equal(t, "0x20b2aa", profile.ColorDefinitions["teal"])
}

func TestLoadYAML(t *testing.T) {
	profile, err := Load(writeKeymap(t, "keymap.yaml", `
keyLayers:
  Layer2:
    Space: Enter
colorDefinitions:
  default: "0x101010"
`))
	require.NoError(t, err)
	require.Equal(t, "Enter", profile.KeyLayers["layer2"]["space"])
	require.Equal(t, "0x101010", profile.ColorDefinitions["default"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read keymap")
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeKeymap(t, "broken.json", `{"keyLayers": `))
	require.Error(t, err)
}
