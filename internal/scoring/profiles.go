package scoring

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// profileFile is the on-disk shape of a weight profile file:
//
//	profiles:
//	  collision repair:
//	    geography: 30
//	    size: 30
//	    service_mix: 25
//	    owner_goals: 15
type profileFile struct {
	Profiles map[string]Weights `yaml:"profiles"`
}

// LoadWeightProfiles reads per-industry weight profiles from a YAML
// file. Keys are matched case-insensitively against the tracker's
// industry. Negative weights are rejected; weights need not sum to 100.
func LoadWeightProfiles(path string) (map[string]Weights, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scoring: read weight profiles %s", path)
	}

	var file profileFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, eris.Wrapf(err, "scoring: parse weight profiles %s", path)
	}

	profiles := make(map[string]Weights, len(file.Profiles))
	for industry, w := range file.Profiles {
		if w.Geography < 0 || w.Size < 0 || w.ServiceMix < 0 || w.OwnerGoals < 0 {
			return nil, eris.Errorf("scoring: profile %q has a negative weight", industry)
		}
		profiles[strings.ToLower(strings.TrimSpace(industry))] = w
	}
	return profiles, nil
}
