package strategy

import (
	mrand "math/rand"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/genforge/genforge/rng"
)

// RandomName draws a person name from gofakeit's bundled name corpus.
// name_type selects first/last/full (default "full"); gender filters to
// "male"/"female" when set (default: unfiltered); case re-cases the
// result to "upper"/"lower"/"title" (default: as generated).
type RandomName struct {
	columnName string
	nameType   string
	gender     string
	caseFormat string
	masterSeed uint64
	r          *rng.RNG
	faker      *gofakeit.Faker
}

// NewRandomName constructs a RandomName strategy from params{name_type?,
// gender?, case?}.
func NewRandomName(columnName string, masterSeed uint64, params map[string]any) *RandomName {
	nameType, _ := paramString(params, "name_type")
	if nameType == "" {
		nameType = "full"
	}
	gender, _ := paramString(params, "gender")
	caseFormat, _ := paramString(params, "case")

	s := &RandomName{
		columnName: columnName,
		nameType:   strings.ToLower(nameType),
		gender:     strings.ToLower(gender),
		caseFormat: strings.ToLower(caseFormat),
		masterSeed: masterSeed,
	}
	s.Reset()
	return s
}

func (s *RandomName) Validate() error {
	switch s.nameType {
	case "first", "last", "full":
	default:
		return validationError("RandomName", "name_type", "must be one of first, last, full")
	}
	switch s.gender {
	case "", "male", "female":
	default:
		return validationError("RandomName", "gender", "must be one of male, female")
	}
	return nil
}

func (s *RandomName) Reset() {
	paramsHash := rng.HashParams("RandomName", s.nameType, s.gender, s.caseFormat)
	s.r = rng.New(s.masterSeed, s.columnName, paramsHash)
	s.faker = gofakeit.NewFaker(mrand.NewSource(int64(s.r.Seed())), true)
}

func (s *RandomName) generateOne() string {
	var name string
	switch s.nameType {
	case "first":
		if s.gender == "male" {
			name = s.faker.FirstNameMale()
		} else if s.gender == "female" {
			name = s.faker.FirstNameFemale()
		} else {
			name = s.faker.FirstName()
		}
	case "last":
		name = s.faker.LastName()
	default:
		if s.gender == "male" {
			name = s.faker.FirstNameMale() + " " + s.faker.LastName()
		} else if s.gender == "female" {
			name = s.faker.FirstNameFemale() + " " + s.faker.LastName()
		} else {
			name = s.faker.Name()
		}
	}
	switch s.caseFormat {
	case "upper":
		return strings.ToUpper(name)
	case "lower":
		return strings.ToLower(name)
	case "title":
		return strings.Title(strings.ToLower(name))
	default:
		return name
	}
}

func (s *RandomName) GenerateChunk(n int) ([]any, error) {
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = s.generateOne()
	}
	return out, nil
}

func (s *RandomName) DescribeState() map[string]any {
	return map[string]any{
		"strategy":  "RandomName",
		"name_type": s.nameType,
		"gender":    s.gender,
		"seed":      s.r.Seed(),
	}
}
