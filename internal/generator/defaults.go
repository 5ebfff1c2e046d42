package generator

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/roach88/mockingbird/internal/ir"
)

const (
	defaultStringLength = 10
	defaultObjectKeys   = 3
	defaultNumericSpan  = 1000
	soonWindow          = 30 * 24 * time.Hour
	patternAttempts     = 500
)

// byType generates a value from the type and constraints alone.
func (f *Faker) byType(name string, t ir.FieldType, c ir.Constraints) (any, error) {
	if len(c.Enum) > 0 {
		return f.pickEnum(name, t, c)
	}

	switch t {
	case ir.TypeString:
		if c.Pattern != nil {
			return f.patternString(name, t, c)
		}
		return f.letters(f.stringLength(c)), nil

	case ir.TypeInt:
		lo, hi := numericRange(c)
		ilo, ihi := math.Ceil(lo), math.Floor(hi)
		if ilo > ihi {
			return nil, &GeneratorFailedError{Name: name, Type: t, Reason: "no integer within bounds " + c.String()}
		}
		return f.fake.IntRange(int(ilo), int(ihi)), nil

	case ir.TypeFloat:
		lo, hi := numericRange(c)
		return f.fake.Float64Range(lo, hi), nil

	case ir.TypeBoolean:
		return f.fake.Bool(), nil

	case ir.TypeDate:
		now := f.now()
		return f.fake.DateRange(now, now.Add(soonWindow)), nil

	case ir.TypeBytes:
		return []byte(f.letters(f.stringLength(c))), nil

	case ir.TypeUUID:
		id, err := uuid.NewRandomFromReader(f.src)
		if err != nil {
			return nil, &GeneratorFailedError{Name: name, Type: t, Reason: err.Error()}
		}
		return id.String(), nil

	case ir.TypeID:
		return f.fake.Regex(`[0-9a-f]{24}`), nil

	case ir.TypeObject:
		n := defaultObjectKeys
		if c.Size != nil {
			n = *c.Size
		}
		obj := make(map[string]any, n)
		for len(obj) < n {
			key := f.letters(f.fake.IntRange(3, 10))
			obj[key] = f.letters(defaultStringLength)
		}
		return obj, nil
	}

	return nil, &GeneratorFailedError{Name: name, Type: t, Reason: "unsupported field type"}
}

// pickEnum chooses among the enum values that also satisfy the bound, size
// and pattern clauses of c.
func (f *Faker) pickEnum(name string, t ir.FieldType, c ir.Constraints) (any, error) {
	allowed := make([]any, 0, len(c.Enum))
	for _, v := range c.Enum {
		if enumAdmits(v, c) {
			allowed = append(allowed, v)
		}
	}
	if len(allowed) == 0 {
		return nil, &GeneratorFailedError{Name: name, Type: t, Reason: "no enum value satisfies " + c.String()}
	}
	return allowed[f.fake.Number(0, len(allowed)-1)], nil
}

func enumAdmits(v any, c ir.Constraints) bool {
	if n, ok := ir.AsFloat(v); ok {
		if c.Min != nil && n < *c.Min {
			return false
		}
		if c.Max != nil && n > *c.Max {
			return false
		}
	}
	if c.Size != nil {
		if n, ok := ir.Length(v); ok && n != *c.Size {
			return false
		}
	}
	if s, ok := v.(string); ok && c.Pattern != nil && !c.Pattern.MatchString(s) {
		return false
	}
	return true
}

// patternString draws strings from the pattern until one has a length
// that fits size, or min and max.
func (f *Faker) patternString(name string, t ir.FieldType, c ir.Constraints) (any, error) {
	for range patternAttempts {
		s := f.fake.Regex(c.Pattern.String())
		if lengthFits(utf8.RuneCountInString(s), c) {
			return s, nil
		}
	}
	return nil, &GeneratorFailedError{Name: name, Type: t, Reason: "pattern yields no string with length " + c.String()}
}

func lengthFits(n int, c ir.Constraints) bool {
	if c.Size != nil && n != *c.Size {
		return false
	}
	if c.Min != nil && float64(n) < *c.Min {
		return false
	}
	if c.Max != nil && float64(n) > *c.Max {
		return false
	}
	return true
}

func (f *Faker) letters(n int) string {
	if n <= 0 {
		return ""
	}
	return f.fake.LetterN(uint(n))
}

// stringLength picks a length for string-like values. Size is an exact
// length; min and max bound the length.
func (f *Faker) stringLength(c ir.Constraints) int {
	switch {
	case c.Size != nil:
		return *c.Size
	case c.Min != nil && c.Max != nil:
		lo, hi := int(math.Ceil(*c.Min)), int(math.Floor(*c.Max))
		if lo >= hi {
			return lo
		}
		return f.fake.IntRange(lo, hi)
	case c.Min != nil:
		return int(math.Ceil(*c.Min))
	case c.Max != nil:
		return int(*c.Max)
	}
	return defaultStringLength
}

// numericRange returns the [lo, hi] interval for numbers. A missing bound
// sits defaultNumericSpan away from the other one; with neither set the
// interval is [0, defaultNumericSpan].
func numericRange(c ir.Constraints) (lo, hi float64) {
	switch {
	case c.Min != nil && c.Max != nil:
		return *c.Min, *c.Max
	case c.Min != nil:
		return *c.Min, *c.Min + defaultNumericSpan
	case c.Max != nil:
		if *c.Max >= 0 {
			return 0, *c.Max
		}
		return *c.Max - defaultNumericSpan, *c.Max
	}
	return 0, defaultNumericSpan
}
