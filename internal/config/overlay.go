package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// overlayDoc is the HCL shape of a blind-schedule overlay file:
//
//	tier "0" {
//	  small_blind = 5
//	  big_blind   = 10
//	}
type overlayDoc struct {
	Tiers []overlayTier `hcl:"tier,block"`
}

type overlayTier struct {
	Index      string `hcl:"index,label"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
}

// ApplyBlindOverlay reads an HCL file of `tier "N"` blocks (each setting
// small_blind and big_blind) and overwrites the matching entries of
// c.Tournament.BlindsSchedule. A tier index beyond the current schedule
// length extends it. Nothing is changed unless every block applies. This is
// an operator convenience layered on
// top of the pinned JSON schedule — the JSON document remains authoritative
// for every field the overlay doesn't touch.
func (c *Config) ApplyBlindOverlay(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("config: parse blind overlay %s: %s", path, diags.Error())
	}

	var doc overlayDoc
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return fmt.Errorf("config: decode blind overlay %s: %s", path, diags.Error())
	}

	schedule := append([]BlindLevel(nil), c.Tournament.BlindsSchedule...)
	for _, tier := range doc.Tiers {
		idx, err := strconv.Atoi(tier.Index)
		if err != nil {
			return fmt.Errorf("config: blind overlay tier label %q is not an integer", tier.Index)
		}
		for idx >= len(schedule) {
			schedule = append(schedule, BlindLevel{})
		}
		schedule[idx] = BlindLevel{Small: tier.SmallBlind, Big: tier.BigBlind}
	}
	c.Tournament.BlindsSchedule = schedule
	return nil
}
