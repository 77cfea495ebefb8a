package kemove

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Profile is the declarative programming input, the shape of the keymap
// document: per-layer key remappings, per-layer static colors, and the
// color name definitions. Key, layer and color names are opaque strings
// resolved case-insensitively against the model's tables.
type Profile struct {
	KeyLayers         map[string]map[string]string `mapstructure:"keyLayers" json:"keyLayers"`
	StaticColorLayers map[string]map[string]string `mapstructure:"staticColorLayers" json:"staticColorLayers"`
	ColorDefinitions  map[string]string            `mapstructure:"colorDefinitions" json:"colorDefinitions"`
}

// Programmer turns a Profile into ordered command layer calls. Layers are
// processed independently: a failure aborts the remaining steps of the
// current layer and surfaces, frames already accepted by the device stay.
type Programmer struct {
	dev *Device
	log *zap.Logger
}

func NewProgrammer(dev *Device, log *zap.Logger) *Programmer {
	return &Programmer{dev: dev, log: log}
}

// Apply programs everything in the profile: lighting first, then key
// layers.
func (p *Programmer) Apply(profile *Profile) error {
	if err := p.ApplyStaticColorLayers(profile); err != nil {
		return err
	}
	return p.ApplyKeyLayers(profile)
}

// ApplyKeyLayers programs every key layer in the profile. Each layer's
// names are validated in full before the first frame for that layer goes
// out.
func (p *Programmer) ApplyKeyLayers(profile *Profile) error {
	model := p.dev.Model()

	for layerName, layerKeymap := range profile.KeyLayers {
		li, ok := model.LayerFor(layerName)
		if !ok {
			return &LookupError{What: "layer", Name: layerName}
		}

		remap := make(map[string]string, len(layerKeymap))
		for srcName, dstName := range layerKeymap {
			if _, ok := model.KeycodeFor(srcName); !ok {
				return &LookupError{What: "source key", Name: srcName, Layer: layerName}
			}
			if _, ok := model.KeycodeFor(dstName); !ok {
				return &LookupError{What: "destination key", Name: dstName, Layer: layerName}
			}
			remap[strings.ToLower(srcName)] = dstName
		}

		codes := make([]uint32, len(model.Keys))
		for i, key := range model.Keys {
			codes[i] = UnusedKey
			if dstName, ok := remap[strings.ToLower(key.Name)]; ok {
				codes[i], _ = model.KeycodeFor(dstName)
			}
		}

		p.log.Info("programming key layer",
			zap.String("layer", layerName),
			zap.Uint8("code", byte(li.Code)),
			zap.Bool("fn", li.FnLayer),
			zap.Int("remapped", len(remap)))

		var err error
		if li.FnLayer {
			if err = p.dev.ResetLayerData(li.Code, DataTypeFnKeySet, true); err == nil {
				err = p.dev.SetFnKeyValues(li.Code, codes)
			}
		} else {
			if err = p.dev.ResetLayerData(li.Code, DataTypeKeySet, true); err == nil {
				err = p.dev.SetKeyValues(li.Code, codes)
			}
		}
		if err != nil {
			return fmt.Errorf("layer %s: %w", layerName, err)
		}
	}
	return nil
}

// ApplyStaticColorLayers programs the static lighting of every color layer
// in the profile. Every LED starts at the layer's default color (the
// layer's "default" entry, else the global default, else black); keys named
// in the layer override their LED position. The preceding lighting reset is
// best effort, the firmware does not always acknowledge it.
func (p *Programmer) ApplyStaticColorLayers(profile *Profile) error {
	model := p.dev.Model()
	colorDefs := lowerKeys(profile.ColorDefinitions)

	for layerName, layerColorMap := range profile.StaticColorLayers {
		li, ok := model.LayerFor(layerName)
		if !ok {
			return &LookupError{What: "layer", Name: layerName}
		}

		colorMap := lowerKeys(layerColorMap)
		defaultColor, err := resolveColor(colorDefs, colorMap["default"])
		if err != nil {
			return fmt.Errorf("layer %s: %w", layerName, err)
		}

		colors := make([]uint32, model.NumLEDs)
		for i := range colors {
			colors[i] = defaultColor
		}
		overridden := 0
		for _, key := range model.Keys {
			colorName, ok := colorMap[strings.ToLower(key.Name)]
			if !ok {
				continue
			}
			color, err := resolveColor(colorDefs, colorName)
			if err != nil {
				return fmt.Errorf("layer %s, key %s: %w", layerName, key.Name, err)
			}
			colors[key.LED] = color
			overridden++
		}

		p.log.Info("programming static lighting",
			zap.String("layer", layerName),
			zap.Uint8("code", byte(li.Code)),
			zap.Int("leds", len(colors)),
			zap.Int("overridden", overridden))

		// errors ignored: the reset before a lighting upload often
		// goes unanswered
		_ = p.dev.ResetLayerData(li.Code, DataTypeLighting, false)

		if err := p.dev.SetStaticLighting(li.Code, colors); err != nil {
			return fmt.Errorf("layer %s: %w", layerName, err)
		}
	}
	return nil
}

func lowerKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

// resolveColor maps a color name to its 24 bit RGB value through the
// profile's color definitions. An empty or unknown name falls back to the
// "default" definition, and black when even that is missing. Values are
// parsed base 0, so "0x20b2aa" and decimal both work.
func resolveColor(defs map[string]string, name string) (uint32, error) {
	v, ok := defs[strings.ToLower(name)]
	if !ok || name == "" {
		v, ok = defs["default"]
		if !ok {
			return 0x000000, nil
		}
	}
	color, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("color value %q: %w", v, err)
	}
	return uint32(color), nil
}
