package referenceframe

import (
	"os"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"go.viam.com/planarkin/utils"
)

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

const (
	unitsRadians = "radians"
	unitsDegrees = "degrees"
)

// ModelConfigJSON represents all supported fields in an arm model JSON file.
type ModelConfigJSON struct {
	Name                   string    `json:"name,omitempty" jsonschema:"description=human readable name of the arm"`
	Units                  string    `json:"units,omitempty" jsonschema:"enum=radians,enum=degrees,default=radians"`
	SegmentLengths         []float64 `json:"segment_lengths" jsonschema:"required,minItems=1"`
	JointLimits            []Limit   `json:"joint_limits" jsonschema:"required"`
	MaxAngularVelocity     []float64 `json:"max_angular_velocity" jsonschema:"required"`
	MaxAngularAcceleration []float64 `json:"max_angular_acceleration" jsonschema:"required"`
	Payload                float64   `json:"payload,omitempty"`
}

// UnmarshalModelJSON will parse the given JSON data into a validated arm config. JSON5 is accepted, so model
// files may carry comments.
func UnmarshalModelJSON(jsonData []byte) (*ArmConfig, error) {
	// empty data probably means that the caller has no model information
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}

	m := &ModelConfigJSON{}
	if err := json5.Unmarshal(jsonData, m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	return m.ParseConfig()
}

// ParseModelJSONFile reads and validates an arm model from a JSON file.
func ParseModelJSONFile(filename string) (*ArmConfig, error) {
	//nolint:gosec
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read json file %q", filename)
	}
	cfg, err := UnmarshalModelJSON(jsonData)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid arm model in %q", filename)
	}
	return cfg, nil
}

// ParseConfig converts the ModelConfigJSON struct into an ArmConfig, converting degree limits to radians, and
// validates the result.
func (m *ModelConfigJSON) ParseConfig() (*ArmConfig, error) {
	limits := make([]Limit, len(m.JointLimits))
	switch m.Units {
	case unitsRadians, "":
		copy(limits, m.JointLimits)
	case unitsDegrees:
		for i, l := range m.JointLimits {
			limits[i] = Limit{Min: utils.DegToRad(l.Min), Max: utils.DegToRad(l.Max)}
		}
	default:
		return nil, errors.Errorf("unsupported units %q, expected %q or %q", m.Units, unitsRadians, unitsDegrees)
	}

	cfg := &ArmConfig{
		SegmentLengths:         append([]float64(nil), m.SegmentLengths...),
		JointLimits:            limits,
		MaxAngularVelocity:     append([]float64(nil), m.MaxAngularVelocity...),
		MaxAngularAcceleration: append([]float64(nil), m.MaxAngularAcceleration...),
		Payload:                m.Payload,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ModelConfigFromArmConfig returns the JSON representation of cfg, with limits in radians.
func ModelConfigFromArmConfig(name string, cfg *ArmConfig) *ModelConfigJSON {
	return &ModelConfigJSON{
		Name:                   name,
		Units:                  unitsRadians,
		SegmentLengths:         cfg.Lengths(),
		JointLimits:            cfg.Limits(),
		MaxAngularVelocity:     append([]float64(nil), cfg.MaxAngularVelocity...),
		MaxAngularAcceleration: append([]float64(nil), cfg.MaxAngularAcceleration...),
		Payload:                cfg.Payload,
	}
}

// ModelJSONSchema returns the JSON Schema describing arm model files.
func ModelJSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
	}
	return r.Reflect(&ModelConfigJSON{})
}
