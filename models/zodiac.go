package models

import "time"

// SunSign represents one of the twelve zodiac categories
type SunSign string

const (
	SignAries       SunSign = "Aries"
	SignTaurus      SunSign = "Taurus"
	SignGemini      SunSign = "Gemini"
	SignCancer      SunSign = "Cancer"
	SignLeo         SunSign = "Leo"
	SignVirgo       SunSign = "Virgo"
	SignLibra       SunSign = "Libra"
	SignScorpio     SunSign = "Scorpio"
	SignSagittarius SunSign = "Sagittarius"
	SignCapricorn   SunSign = "Capricorn"
	SignAquarius    SunSign = "Aquarius"
	SignPisces      SunSign = "Pisces"

	// SignMystic is the sentinel used when a birth date cannot be parsed
	SignMystic SunSign = "Mystic"
)

// SignTraits holds the fixed metadata associated with a sun sign
type SignTraits struct {
	Element      string `json:"element"`
	RulingPlanet string `json:"ruling_planet"`
}

var signTraits = map[SunSign]SignTraits{
	SignAries:       {Element: "Fire", RulingPlanet: "Mars"},
	SignTaurus:      {Element: "Earth", RulingPlanet: "Venus"},
	SignGemini:      {Element: "Air", RulingPlanet: "Mercury"},
	SignCancer:      {Element: "Water", RulingPlanet: "Moon"},
	SignLeo:         {Element: "Fire", RulingPlanet: "Sun"},
	SignVirgo:       {Element: "Earth", RulingPlanet: "Mercury"},
	SignLibra:       {Element: "Air", RulingPlanet: "Venus"},
	SignScorpio:     {Element: "Water", RulingPlanet: "Pluto"},
	SignSagittarius: {Element: "Fire", RulingPlanet: "Jupiter"},
	SignCapricorn:   {Element: "Earth", RulingPlanet: "Saturn"},
	SignAquarius:    {Element: "Air", RulingPlanet: "Uranus"},
	SignPisces:      {Element: "Water", RulingPlanet: "Neptune"},
}

// Traits returns the element and ruling planet for a sign.
// The zero SignTraits is returned for SignMystic and unknown values.
func (s SunSign) Traits() SignTraits {
	return signTraits[s]
}

// AllSigns lists the twelve signs in zodiac order
func AllSigns() []SunSign {
	return []SunSign{
		SignAries, SignTaurus, SignGemini, SignCancer,
		SignLeo, SignVirgo, SignLibra, SignScorpio,
		SignSagittarius, SignCapricorn, SignAquarius, SignPisces,
	}
}

// ResolveSunSign maps a calendar (day, month) pair to its sun sign under the
// Western tropical zodiac boundaries. The ranges are paired closed intervals
// on day-of-month and partition the full year; Pisces is the fallthrough for
// its own range and for any combination outside a real calendar.
func ResolveSunSign(day, month int) SunSign {
	switch {
	case (month == 3 && day >= 21) || (month == 4 && day <= 19):
		return SignAries
	case (month == 4 && day >= 20) || (month == 5 && day <= 20):
		return SignTaurus
	case (month == 5 && day >= 21) || (month == 6 && day <= 20):
		return SignGemini
	case (month == 6 && day >= 21) || (month == 7 && day <= 22):
		return SignCancer
	case (month == 7 && day >= 23) || (month == 8 && day <= 22):
		return SignLeo
	case (month == 8 && day >= 23) || (month == 9 && day <= 22):
		return SignVirgo
	case (month == 9 && day >= 23) || (month == 10 && day <= 22):
		return SignLibra
	case (month == 10 && day >= 23) || (month == 11 && day <= 21):
		return SignScorpio
	case (month == 11 && day >= 22) || (month == 12 && day <= 21):
		return SignSagittarius
	case (month == 12 && day >= 22) || (month == 1 && day <= 19):
		return SignCapricorn
	case (month == 1 && day >= 20) || (month == 2 && day <= 18):
		return SignAquarius
	default:
		return SignPisces
	}
}

// ResolveSunSignFromDate resolves a sign from an ISO-8601 date string.
// Unparseable input yields SignMystic instead of an error so that callers
// rendering a profile never have to fail on a malformed stored date.
func ResolveSunSignFromDate(birthDate string) SunSign {
	t, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return SignMystic
	}
	return ResolveSunSign(t.Day(), int(t.Month()))
}
