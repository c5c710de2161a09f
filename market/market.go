// Package market generates the daily trading conditions for the simulator:
// the season, a weather event drawn from season-specific odds, holiday
// windows on a fixed calendar, and a multi-day economic cycle. The
// conditions combine into an aggregate demand multiplier plus per-product
// multipliers consumed by the demand model.
package market

import (
	"math/rand"
	"strings"

	"github.com/storesim-xyz/go-storesim/catalog"
)

// Weather is the day's weather event.
type Weather string

const (
	WeatherNormal  Weather = "normal"
	HeatWave       Weather = "heat_wave"
	ColdSnap       Weather = "cold_snap"
	RainyDay       Weather = "rainy_day"
	PerfectWeather Weather = "perfect_weather"
)

// Holiday is a demand-spiking calendar event.
type Holiday string

const (
	NoHoliday      Holiday = "none"
	ValentinesDay  Holiday = "valentines_day"
	SpringBreak    Holiday = "spring_break"
	SummerPicnic   Holiday = "summer_picnic"
	Halloween      Holiday = "halloween"
	WinterHolidays Holiday = "winter_holidays"
)

// Condition is the economy-wide state, cycling over multi-day phases.
type Condition string

const (
	EconNormal    Condition = "normal"
	EconBoom      Condition = "boom"
	EconRecession Condition = "recession"
	EconRecovery  Condition = "recovery"
)

// Event is one day's market conditions.
type Event struct {
	Day              int
	Season           catalog.Season
	Weather          Weather
	Holiday          Holiday
	Economic         Condition
	DemandMultiplier float64 // aggregate: weather effect x holiday effect
	Description      string
}

// seasonLength is how many days each season lasts.
const seasonLength = 30

var seasonOrder = []catalog.Season{catalog.Spring, catalog.Summer, catalog.Fall, catalog.Winter}

// weatherOdds lists (weather, probability) pairs per season. Slices keep
// the sampling order stable so a fixed seed reproduces identical weather.
var weatherOdds = map[catalog.Season][]struct {
	weather Weather
	prob    float64
}{
	catalog.Spring: {{WeatherNormal, 0.6}, {RainyDay, 0.25}, {PerfectWeather, 0.15}},
	catalog.Summer: {{WeatherNormal, 0.5}, {HeatWave, 0.3}, {PerfectWeather, 0.2}},
	catalog.Fall:   {{WeatherNormal, 0.65}, {RainyDay, 0.2}, {ColdSnap, 0.15}},
	catalog.Winter: {{WeatherNormal, 0.6}, {ColdSnap, 0.35}, {RainyDay, 0.05}},
}

// holidayCalendar maps the center day of each holiday window. A holiday is
// active within two days of its center.
var holidayCalendar = []struct {
	day     int
	holiday Holiday
}{
	{14, ValentinesDay},
	{45, SpringBreak},
	{75, SummerPicnic},
	{105, Halloween},
	{135, WinterHolidays},
}

var weatherEffects = map[Weather]float64{
	WeatherNormal:  1.0,
	HeatWave:       1.2,
	ColdSnap:       0.8,
	RainyDay:       0.9,
	PerfectWeather: 1.1,
}

var holidayEffects = map[Holiday]float64{
	NoHoliday:      1.0,
	ValentinesDay:  1.3,
	SpringBreak:    1.2,
	SummerPicnic:   1.4,
	Halloween:      1.5,
	WinterHolidays: 1.6,
}

var economicEffects = map[Condition]float64{
	EconNormal:    1.0,
	EconBoom:      1.3,
	EconRecession: 0.7,
	EconRecovery:  1.1,
}

// weatherProductEffects boosts or dampens individual products per weather.
var weatherProductEffects = map[Weather]map[string]float64{
	HeatWave:       {"Water": 2.0, "Coke": 1.5, "Ice Cream": 1.8, "Sandwiches": 1.2},
	ColdSnap:       {"Chocolate": 1.3, "Crackers": 1.2, "Ice Cream": 0.5, "Water": 0.7},
	RainyDay:       {"Chocolate": 1.2, "Crackers": 1.1, "Sandwiches": 0.8},
	PerfectWeather: {"Sandwiches": 1.3, "Chips": 1.2, "Water": 1.2},
}

// holidayProductEffects boosts individual products per holiday.
var holidayProductEffects = map[Holiday]map[string]float64{
	ValentinesDay:  {"Chocolate": 2.5, "Candy": 1.8},
	SpringBreak:    {"Water": 1.4, "Chips": 1.3, "Sandwiches": 1.2},
	SummerPicnic:   {"Water": 1.6, "Chips": 1.5, "Sandwiches": 1.8, "Ice Cream": 1.4},
	Halloween:      {"Candy": 3.0, "Chocolate": 2.0},
	WinterHolidays: {"Chocolate": 1.8, "Candy": 1.5, "Crackers": 1.3},
}

// Generator produces one Event per day and tracks the season and economic
// cycle across days. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand

	season      catalog.Season
	seasonStart int

	economic      Condition
	econRemaining int

	lastDay   int
	lastEvent Event
}

// NewGenerator creates a market generator starting in spring under normal
// economic conditions.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{
		rng:         rng,
		season:      catalog.Spring,
		seasonStart: 1,
		economic:    EconNormal,
		lastDay:     -1,
	}
}

// Conditions returns the market event for the given day. Calling it again
// with the same day returns the cached event without advancing any cycle
// state or consuming randomness.
func (g *Generator) Conditions(day int) Event {
	if day == g.lastDay {
		return g.lastEvent
	}

	g.advanceSeason(day)
	g.advanceEconomy()

	weather := g.sampleWeather()
	holiday := holidayFor(day)

	ev := Event{
		Day:              day,
		Season:           g.season,
		Weather:          weather,
		Holiday:          holiday,
		Economic:         g.economic,
		DemandMultiplier: weatherEffects[weather] * holidayEffects[holiday],
	}
	ev.Description = describe(ev)

	g.lastDay = day
	g.lastEvent = ev
	return ev
}

// ProductMultiplier returns the total demand multiplier for one product
// under the given conditions, floored at 0.1.
func ProductMultiplier(p catalog.Product, ev Event) float64 {
	m := p.SeasonalMultiplier(ev.Season)
	if wm, ok := weatherProductEffects[ev.Weather][p.Name]; ok {
		m *= wm
	}
	if hm, ok := holidayProductEffects[ev.Holiday][p.Name]; ok {
		m *= hm
	}
	m *= economicEffects[ev.Economic]
	m *= ev.DemandMultiplier
	if m < 0.1 {
		return 0.1
	}
	return m
}

// ProductMultipliers computes the multiplier for every catalog product in
// declaration order.
func ProductMultipliers(c *catalog.Catalog, ev Event) map[string]float64 {
	out := make(map[string]float64, c.Len())
	for _, p := range c.Products() {
		out[p.Name] = ProductMultiplier(p, ev)
	}
	return out
}

func (g *Generator) advanceSeason(day int) {
	if day-g.seasonStart < seasonLength {
		return
	}
	for i, s := range seasonOrder {
		if s == g.season {
			g.season = seasonOrder[(i+1)%len(seasonOrder)]
			break
		}
	}
	g.seasonStart = day
}

func (g *Generator) advanceEconomy() {
	if g.econRemaining > 0 {
		g.econRemaining--
		return
	}
	switch g.economic {
	case EconNormal:
		r := g.rng.Float64()
		switch {
		case r < 0.15:
			g.economic = EconBoom
			g.econRemaining = g.randRange(20, 40)
		case r < 0.25:
			g.economic = EconRecession
			g.econRemaining = g.randRange(30, 60)
		default:
			g.econRemaining = g.randRange(15, 30)
		}
	case EconBoom:
		if g.rng.Float64() < 0.7 {
			g.economic = EconNormal
			g.econRemaining = g.randRange(20, 40)
		} else {
			g.economic = EconRecession
			g.econRemaining = g.randRange(25, 50)
		}
	case EconRecession:
		g.economic = EconRecovery
		g.econRemaining = g.randRange(15, 30)
	case EconRecovery:
		g.economic = EconNormal
		g.econRemaining = g.randRange(20, 40)
	}
}

func (g *Generator) sampleWeather() Weather {
	r := g.rng.Float64()
	cumulative := 0.0
	for _, entry := range weatherOdds[g.season] {
		cumulative += entry.prob
		if r <= cumulative {
			return entry.weather
		}
	}
	return WeatherNormal
}

func (g *Generator) randRange(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func holidayFor(day int) Holiday {
	for _, entry := range holidayCalendar {
		diff := day - entry.day
		if diff >= -2 && diff <= 2 {
			return entry.holiday
		}
	}
	return NoHoliday
}

var weatherText = map[Weather]string{
	WeatherNormal:  "pleasant weather",
	HeatWave:       "heat wave, customers seeking cool relief",
	ColdSnap:       "cold snap, comfort food demand rising",
	RainyDay:       "rainy day, customers want comfort items",
	PerfectWeather: "perfect weather, ideal shopping conditions",
}

var holidayText = map[Holiday]string{
	ValentinesDay:  "Valentine's Day, chocolate sales soaring",
	SpringBreak:    "spring break season, travel snacks in demand",
	SummerPicnic:   "summer picnic season, outdoor food rush",
	Halloween:      "Halloween, massive candy demand",
	WinterHolidays: "winter holidays, festive treat demand",
}

var economicText = map[Condition]string{
	EconBoom:      "economic boom, customers spending freely",
	EconRecession: "economic recession, budget-conscious shoppers",
	EconRecovery:  "economic recovery, cautious optimism in spending",
}

func describe(ev Event) string {
	parts := []string{weatherText[ev.Weather]}
	if ev.Holiday != NoHoliday {
		parts = append(parts, holidayText[ev.Holiday])
	}
	if ev.Economic != EconNormal {
		parts = append(parts, economicText[ev.Economic])
	}
	return strings.Join(parts, " | ")
}
