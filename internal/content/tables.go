package content

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spacehole-rogue/nebula_nexus/internal/game"
)

// escalationTurn is the turn from which offline risks climb a tier.
const escalationTurn = 10

type category uint8

const (
	catInvestigate category = iota
	catMilitary
	catResearch
	catSupport
)

type mission struct {
	name     string
	cat      category
	briefing string // {sector}, {location}
}

var missions = []mission{
	{"Crash Site", catInvestigate, "Sensors detect a crash site near {location} in the {sector}. Wreckage is scattered across the surface."},
	{"Derelict Ship", catInvestigate, "A derelict vessel drifts near {location} in the {sector}. No life signs. The hull is breached in a dozen places."},
	{"Distress Signal", catInvestigate, "A weak distress signal pulses from {location} in the {sector}. The transmission is fragmented but urgent."},
	{"Everyone Disappeared", catInvestigate, "All contact with {location} in the {sector} was lost three days ago. No signals, no beacons."},
	{"Vanished Ship", catInvestigate, "A registered hauler was last tracked near {location} in the {sector}. It never reached its destination."},
	{"Inspection", catMilitary, "A patrol authority near {location} in the {sector} orders you to heave to for inspection."},
	{"Pursuit", catMilitary, "An alert from {location} in the {sector}: a fugitive raider was spotted in the lane. Authorities want it stopped."},
	{"Blackhole", catResearch, "A stable singularity churns near {location} in the {sector}. Its accretion disk pulses with quantum flux."},
	{"Nebula", catResearch, "A dense nebula near {location} in the {sector} is leaking anomalous radiation. Sensors can barely see inside."},
	{"Wormhole", catResearch, "A spatial anomaly near {location} in the {sector} reads as a stable wormhole. The far end is unknown."},
	{"Defend", catSupport, "The settlement at {location} in the {sector} is under attack and broadcasting on every frequency."},
	{"Medical", catSupport, "A medical emergency has been declared at {location} in the {sector}. A pathogen is moving through the population."},
	{"Transport", catSupport, "Refugees near {location} in the {sector} need passage out. Their warp core is failing."},
}

var sectors = []string{
	"Kessler Reach", "Orion Drift", "Vega Expanse", "Cygnus Verge", "Tannhauser Deep",
	"Hadley Gap", "Altair Shoals", "Perseus Rift",
}

var locations = []string{
	"an alternate dimension rift", "a civilian colony", "a paradise garden world",
	"a false utopia", "a military outpost", "a mining base", "a pleasure district station",
	"a prehistoric planet", "a prison facility", "a research base",
}

type contact struct {
	intro string // {name}
	names []string
}

var contacts = []contact{
	{"{name}, an alien ambassador, hails you with formal greetings.", []string{"Thex", "Zira", "Envoy Tal'Set", "Diplomat Vreen"}},
	{"An ambitious young officer named {name} demands your attention on comms.", []string{"Lt. Harker", "Cmdr. Voss", "Ensign Zhao"}},
	{"{name}, a wild-eyed researcher, hails you frantically.", []string{"Dr. Krell", "Professor Zahn", "Dr. Okkonen"}},
	{"{name}, an eccentric trader, broadcasts a deal too good to be true.", []string{"Korb", "Madame Luxe", "Trader Nim"}},
	{"{name}, an enemy captain of some reputation, hails with unexpected courtesy.", []string{"Captain D'vak", "Commander Torek", "Captain Sela"}},
	{"A hotshot pilot called {name} buzzes your bridge, showing off.", []string{"Ace", "Maverick", "Stardust"}},
	{"You recognize {name} on the comm channel. An old rival. This won't be simple.", []string{"Rennick", "Castillo", "Blake"}},
	{"An artificial intelligence designated {name} controls everything here.", []string{"NEXUS-9", "Sovereign", "AXIOM"}},
	{"{name}, a diplomat of questionable reputation, offers to negotiate.", []string{"Ambassador Krel", "Envoy Shade", "Consul Nix"}},
	{"A vast supercomputer called {name} speaks in perfect monotone.", []string{"ORACLE", "CORE", "MINERVA"}},
}

var twistHints = []string{
	"You notice suspicious movement on sensors. Someone is watching.",
	"Bioscans detect unusual pathogen signatures in the area.",
	"Engineering reports intermittent faults in the warp core.",
	"Sensors pick up vessels maneuvering into position around you.",
	"Hull sensors are picking up micro-fracture warnings.",
	"Chronometric readings are inconsistent. Time is behaving strangely.",
}

var twistReveals = []string{
	"An assassin strikes from the shadows.",
	"A pathogen slips past quarantine.",
	"A power coupling overloads and vents plasma.",
	"Pirate raiders decloak and open fire.",
	"An impact rocks the ship. Hull breach warning.",
	"Energy dampeners snap on and hold you in place.",
}

type choiceTemplate struct {
	text string
	typ  game.ChoiceType
	risk game.Risk
}

var categoryChoices = map[category][]choiceTemplate{
	catInvestigate: {
		{"Send a boarding party in close", game.Aggressive, game.RiskMedium},
		{"Hail and request information", game.Diplomatic, game.RiskLow},
		{"Slice into the local data core", game.Scientific, game.RiskMedium},
	},
	catMilitary: {
		{"Open fire first", game.Aggressive, game.RiskHigh},
		{"Negotiate", game.Diplomatic, game.RiskMedium},
		{"Burn hard for the debris field", game.Evasive, game.RiskMedium},
	},
	catResearch: {
		{"Hack the survey buoys for their data", game.Scientific, game.RiskHigh},
		{"Record observations and log them", game.Diplomatic, game.RiskLow},
		{"Thread a course through the anomaly", game.Evasive, game.RiskHigh},
	},
	catSupport: {
		{"Drive off the attackers", game.Aggressive, game.RiskHigh},
		{"Offer what help you can", game.Diplomatic, game.RiskLow},
		{"Run a blockade of the quarantine line", game.Evasive, game.RiskMedium},
	},
}

// rollEpisode assembles an event from the tables.
func rollEpisode(rng *rand.Rand, req game.EventRequest, id string) game.GameEvent {
	m := missions[rng.IntN(len(missions))]
	loc := locations[rng.IntN(len(locations))]
	sector := sectors[rng.IntN(len(sectors))]
	who := contacts[rng.IntN(len(contacts))]
	name := who.names[rng.IntN(len(who.names))]
	hint := twistHints[rng.IntN(len(twistHints))]

	r := strings.NewReplacer("{sector}", sector, "{location}", loc)
	desc := r.Replace(m.briefing) + " " + strings.ReplaceAll(who.intro, "{name}", name) + " " + hint
	if len(req.Inventory) > 0 && rng.IntN(4) == 0 {
		it := req.Inventory[rng.IntN(len(req.Inventory))]
		desc += " Your " + it.Name + " hums in its case."
	}

	ev := game.GameEvent{
		ID:          id,
		Title:       strings.ToUpper(m.name) + " at " + strings.ToUpper(loc),
		Description: desc,
	}
	for i, c := range categoryChoices[m.cat] {
		ev.Choices = append(ev.Choices, game.Choice{
			ID:   choiceID(i),
			Text: c.text,
			Type: c.typ,
			Risk: escalate(c.risk, req.Turn),
		})
	}
	return ev
}

func choiceID(i int) string {
	return fmt.Sprintf("choice-%d", i)
}

var raiderNames = []string{
	"Void Fang", "Black Marlin", "Skull Dancer", "Dread Nail", "Gut Ripper",
}

var raiderClasses = []string{
	"Raider Corvette", "Interceptor Wing", "Boarding Frigate", "Drone Swarm", "Gunboat",
}

var raiderHails = []string{
	"CUT YOUR ENGINES. HAND OVER YOUR CARGO.",
	"NICE SHIP. IT IS OURS NOW.",
	"RESISTANCE IS EXPENSIVE. SURRENDER IS FREE.",
}

var weaknesses = []string{
	"Aft shield emitter", "Exposed reactor vent", "Unarmored flank", "Sluggish turn rate", "Overheated warp core",
}

var threatLevels = []game.ThreatLevel{
	game.ThreatLow, game.ThreatModerate, game.ThreatModerate, game.ThreatCritical, game.ThreatExtreme,
}

// outcomeLines holds [success, failure] texts per choice type.
var outcomeLines = map[game.ChoiceType][2][]string{
	game.Aggressive: {
		{"Your gunners find their mark and the enemy breaks apart.", "Overwhelming force carries the day."},
		{"The enemy weathers your assault and answers in kind.", "Your attack runs straight into a crossfire."},
	},
	game.Diplomatic: {
		{"A tense exchange, but you reach an understanding.", "They are impressed by your candor and share what they know."},
		{"Your words land badly. They take offense and cut the channel.", "The talks collapse into threats."},
	},
	game.Scientific: {
		{"The data is extraordinary, unlike anything on record.", "Your analysis cracks the puzzle wide open."},
		{"The readings scramble your sensors.", "The analysis loops back on itself and burns out a relay."},
	},
	game.Evasive: {
		{"You slip away cleanly.", "Your pilot threads the gap with meters to spare."},
		{"You are spotted before you clear the lane.", "The escape burn strains the engines to breaking."},
	},
}

type artifact struct {
	name, desc string
}

var artifacts = []artifact{
	{"Quantum Lens", "A crystal that bends light into the next second."},
	{"Star Chart", "Coordinates to a system nobody has charted."},
	{"Void Crystal", "Cold to the touch. It hums near warp cores."},
	{"Data Core", "A corrupted log: the Monkey Lion vanished from all sensors."},
	{"Xeno Relic", "Carved by hands that were not hands."},
}
