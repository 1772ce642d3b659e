package profile

import "fmt"

// Definition is the YAML form of a profile, as written in tally.yaml.
//
//	- id: mybank
//	  columns: 5
//	  mapping:
//	    date: 0
//	    processed_date: 0
//	    description: 1
//	    holder: My Bank
//	    account_number: Checking
//	    amount: 2
//	  date_layout: "2006-01-02"
//	  amount: withdrawal
type Definition struct {
	ID                  string  `yaml:"id"`
	Name                string  `yaml:"name,omitempty"`
	Description         string  `yaml:"description,omitempty"`
	Columns             int     `yaml:"columns,omitempty"`
	Mapping             Mapping `yaml:"mapping"`
	DateLayout          string  `yaml:"date_layout,omitempty"`
	ProcessedDateLayout string  `yaml:"processed_date_layout,omitempty"`
	Amount              string  `yaml:"amount,omitempty"` // plain, negate or withdrawal
}

// Compile converts a definition into a validated Profile.
func (d Definition) Compile() (Profile, error) {
	amount, err := AmountParserByName(d.Amount)
	if err != nil {
		return Profile{}, fmt.Errorf("profile %q: %w", d.ID, err)
	}

	p := Profile{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Columns:     d.Columns,
		Mapping:     d.Mapping,
		Parsers:     Parsers{Amount: amount},
	}
	if p.Name == "" {
		p.Name = d.ID
	}
	if d.DateLayout != "" {
		p.Parsers.Date = LayoutDate(d.DateLayout)
	}
	if d.ProcessedDateLayout != "" {
		p.Parsers.ProcessedDate = LayoutDate(d.ProcessedDateLayout)
	}

	if verrs := Validate(p); len(verrs) > 0 {
		return Profile{}, verrs[0]
	}
	return p, nil
}

// LoadDefinitions compiles defs into reg, replacing built-ins with the same
// id.
func LoadDefinitions(reg *Registry, defs []Definition) error {
	for _, d := range defs {
		p, err := d.Compile()
		if err != nil {
			return err
		}
		if err := reg.AddOrReplace(p); err != nil {
			return err
		}
	}
	return nil
}
