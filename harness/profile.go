// profile.go — Target-profile loading for the soak harness.
//
// A profile is the harness-side stand-in for the toolchain's CPU-model
// selection: it names the modeled core, states the bus word width it was
// built for, and carries the soak budgets. Profiles live in a JSON file so a
// board bring-up can be described without recompiling; decoding goes through
// sonnet, the same codec the rest of the tooling uses.

package harness

import (
	"errors"
	"os"

	"main/constants"

	"github.com/sugawarayuuta/sonnet"
)

// Profile describes one modeled target plus its soak budgets.
type Profile struct {
	Name         string `json:"name"`
	BusWordBytes int    `json:"bus_word_bytes"`
	Core         int    `json:"core"`       // host CPU to pin the core goroutine to
	Iterations   int    `json:"iterations"` // per-scenario budget, 0 = default
	Seed         uint64 `json:"seed"`       // soak pattern seed, 0 = fixed default
}

type profileFile struct {
	Profiles []Profile `json:"profiles"`
}

var errNoProfiles = errors.New("profile file lists no profiles")

// LoadProfiles reads and decodes the profile file, filling defaults.
// Profiles whose bus width disagrees with the compiled target model are kept
// in the list; the runner skips them with a diagnostic, since the width
// threshold baked into the entry points only matches constants.BusWordBytes.
func LoadProfiles(path string) ([]Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf profileFile
	if err := sonnet.Unmarshal(raw, &pf); err != nil {
		return nil, err
	}
	if len(pf.Profiles) == 0 {
		return nil, errNoProfiles
	}
	for i := range pf.Profiles {
		if pf.Profiles[i].Iterations <= 0 {
			pf.Profiles[i].Iterations = constants.DefaultIterations
		}
		if pf.Profiles[i].Seed == 0 {
			pf.Profiles[i].Seed = 0x9e3779b97f4a7c15
		}
	}
	return pf.Profiles, nil
}

// MatchesTarget reports whether the profile was written for the compiled
// target model.
func MatchesTarget(p Profile) bool {
	return p.BusWordBytes == constants.BusWordBytes
}
