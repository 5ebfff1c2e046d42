package generator

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/roach88/mockingbird/internal/ir"
)

func str(fn func(f *gofakeit.Faker) string) func(*gofakeit.Faker, time.Time) any {
	return func(f *gofakeit.Faker, _ time.Time) any { return fn(f) }
}

// DefaultCatalog is the candidate set used by New.
var DefaultCatalog = []Candidate{
	{Names: []string{"firstName", "givenName"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).FirstName)},
	{Names: []string{"lastName", "surname", "familyName"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).LastName)},
	{Names: []string{"name", "fullName", "displayName"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Name)},
	{Names: []string{"email", "emailAddress"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Email)},
	{Names: []string{"phone", "phoneNumber", "mobile"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Phone)},
	{Names: []string{"username", "login", "handle"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Username)},
	{Names: []string{"url", "website", "homepage"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).URL)},
	{Names: []string{"domain", "domainName"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).DomainName)},
	{Names: []string{"city", "town"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).City)},
	{Names: []string{"country"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Country)},
	{Names: []string{"countryCode"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).CountryAbr)},
	{Names: []string{"street", "address", "streetAddress"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Street)},
	{Names: []string{"zip", "zipCode", "postalCode"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Zip)},
	{Names: []string{"state", "province"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).State)},
	{Names: []string{"company", "companyName", "organization"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Company)},
	{Names: []string{"jobTitle", "position"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).JobTitle)},
	{Names: []string{"gender"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Gender)},
	{Names: []string{"color", "colour"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Color)},
	{Names: []string{"hexColor"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).HexColor)},
	{Names: []string{"productName", "product"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).ProductName)},
	{Names: []string{"ipAddress", "ip", "ipv4"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).IPv4Address)},
	{Names: []string{"ipv6"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).IPv6Address)},
	{Names: []string{"language"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Language)},
	{Names: []string{"currency", "currencyCode"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).CurrencyShort)},
	{Names: []string{"description", "summary", "bio"}, Type: ir.TypeString, Generate: str((*gofakeit.Faker).Phrase)},

	{Names: []string{"age"}, Type: ir.TypeInt, Generate: func(f *gofakeit.Faker, _ time.Time) any { return f.IntRange(18, 90) }},
	{Names: []string{"year"}, Type: ir.TypeInt, Generate: func(f *gofakeit.Faker, _ time.Time) any { return f.Year() }},
	{Names: []string{"month"}, Type: ir.TypeInt, Generate: func(f *gofakeit.Faker, _ time.Time) any { return f.Month() }},
	{Names: []string{"day"}, Type: ir.TypeInt, Generate: func(f *gofakeit.Faker, _ time.Time) any { return f.Day() }},
	{Names: []string{"quantity", "count"}, Type: ir.TypeInt, Generate: func(f *gofakeit.Faker, _ time.Time) any { return f.IntRange(1, 100) }},

	{Names: []string{"price", "amount", "cost"}, Type: ir.TypeFloat, Generate: func(f *gofakeit.Faker, _ time.Time) any { return f.Price(1, 1000) }},
	{Names: []string{"latitude", "lat"}, Type: ir.TypeFloat, Generate: func(f *gofakeit.Faker, _ time.Time) any { return f.Latitude() }},
	{Names: []string{"longitude", "lng", "lon"}, Type: ir.TypeFloat, Generate: func(f *gofakeit.Faker, _ time.Time) any { return f.Longitude() }},

	{Names: []string{"birthday", "birthDate", "dateOfBirth", "dob"}, Type: ir.TypeDate, Generate: func(f *gofakeit.Faker, now time.Time) any {
		return f.DateRange(now.AddDate(-80, 0, 0), now.AddDate(-18, 0, 0))
	}},
	{Names: []string{"createdAt", "updatedAt", "timestamp"}, Type: ir.TypeDate, Generate: func(f *gofakeit.Faker, now time.Time) any {
		return f.DateRange(now.AddDate(-1, 0, 0), now)
	}},
}
