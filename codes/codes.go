// Package codes produces the human-readable identifiers printed on
// invoices, patient records and catalog entries.
package codes

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Generator produces date-stamped codes with a random suffix. The zero
// value is not usable; construct one with NewGenerator.
type Generator struct {
	now func() time.Time
	rng *rand.Rand
}

// NewGenerator returns a Generator backed by the wall clock.
func NewGenerator() *Generator {
	return &Generator{
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededGenerator returns a Generator with a fixed clock and seed,
// used by tests that need reproducible codes.
func NewSeededGenerator(now func() time.Time, seed int64) *Generator {
	return &Generator{now: now, rng: rand.New(rand.NewSource(seed))}
}

// InvoiceNumber returns a code of the form INV-20260831-0042.
func (g *Generator) InvoiceNumber() string {
	t := g.now()
	return fmt.Sprintf("INV-%04d%02d%02d-%04d", t.Year(), t.Month(), t.Day(), g.rng.Intn(10_000))
}

// PatientCode returns a code of the form PAT-2608-042.
func (g *Generator) PatientCode() string {
	return g.monthlyCode("PAT")
}

// TreatmentCode returns a code of the form TRT-2608-042.
func (g *Generator) TreatmentCode() string {
	return g.monthlyCode("TRT")
}

// PackageCode returns a code of the form PKG-2608-042.
func (g *Generator) PackageCode() string {
	return g.monthlyCode("PKG")
}

// ItemCode derives a code from the item's category, e.g. LAB-0042 for
// "Laboratory". Categories without usable letters fall back to ITM.
func (g *Generator) ItemCode(category string) string {
	prefix := categoryPrefix(category)
	return fmt.Sprintf("%s-%04d", prefix, g.rng.Intn(10_000))
}

func (g *Generator) monthlyCode(prefix string) string {
	t := g.now()
	return fmt.Sprintf("%s-%02d%02d-%03d", prefix, t.Year()%100, t.Month(), g.rng.Intn(1_000))
}

func categoryPrefix(category string) string {
	var b strings.Builder
	for _, r := range category {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= 3 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "ITM"
	}
	return b.String()
}
