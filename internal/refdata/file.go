package refdata

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/taxrisk-cli/internal/model"
)

// FileProvider loads reference tables from a YAML file maintained by the
// configuration collaborator. Missing sector entries are filled from the
// builtin snapshot so a sparse file never removes the default profile.
type FileProvider struct {
	Path string
}

// NewFileProvider creates a provider reading the given YAML path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// Load reads and validates the reference file. Any structural problem is a
// configuration error: the engine must not run against broken tables.
func (p *FileProvider) Load(_ context.Context) (*Snapshot, error) {
	raw, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: read %s", p.Path)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return nil, eris.Wrapf(err, "refdata: parse %s", p.Path)
	}

	if err := validate(&snap); err != nil {
		return nil, eris.Wrapf(err, "refdata: validate %s", p.Path)
	}

	// Guarantee the fallback profile exists even if the file omits it.
	if _, ok := snap.Sectors[DefaultSectorCode]; !ok {
		if snap.Sectors == nil {
			snap.Sectors = make(map[string]SectorProfile, 1)
		}
		snap.Sectors[DefaultSectorCode] = Builtin().Sectors[DefaultSectorCode]
	}

	return &snap, nil
}

func validate(s *Snapshot) error {
	if s.Version == "" {
		return eris.New("missing version")
	}
	if s.UpdatedAt.IsZero() {
		return eris.New("missing updated_at")
	}
	if s.Rates.VATStandardPct <= 0 {
		return eris.New("vat_standard_pct must be > 0")
	}
	for code, p := range s.Sectors {
		if p.Code != "" && p.Code != code {
			return eris.Errorf("sector %q: code mismatch (%q)", code, p.Code)
		}
		if p.AvgMonthlyWage < 0 || p.AvgInventoryToSales < 0 {
			return eris.Errorf("sector %q: negative average", code)
		}
		// Margins live on the same scale the evaluator compares against.
		if r := model.Round2(p.AvgProfitMarginPct); r != p.AvgProfitMarginPct {
			p.AvgProfitMarginPct = r
			s.Sectors[code] = p
		}
	}
	return nil
}
