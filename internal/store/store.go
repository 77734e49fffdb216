// Package store holds every piece of shared visitor state in the house:
// the bounded feature logs, the pulse, and the footprint aggregates.
//
// Nothing here is persisted. The collections live exactly as long as the
// process — the collective memory also forgets.
package store

// Per-feature retention caps. Each log evicts oldest-first once full.
const (
	SeedCap      = 500
	EchoCap      = 200
	PhraseCap    = 500
	PlantCap     = 100
	StrokeCap    = 50
	WritingCap   = 100
	ExchangeCap  = 200
	BroadcastCap = 100
	GraffitiCap  = 200
	AshCap       = 100
	VoiceCap     = 100
)

// Store owns all shared collections. Each collection carries its own lock,
// and no operation spans two collections, so there is no cross-collection
// consistency window.
type Store struct {
	Seeds      *Log[Seed]
	Echoes     *Log[Text]
	Phrases    *Log[Phrase]
	Plants     *Log[Text]
	Strokes    *Log[Stroke]
	Writings   *Log[Text]
	Exchanges  *Log[Exchange]
	Broadcasts *Log[Broadcast]
	Graffiti   *Log[Text]
	Ash        *Log[Text]
	Voices     *Log[Voice]

	Pulse      *Pulse
	Footprints *Footprints
}

// New creates an empty store with all collection caps in place.
func New() *Store {
	return &Store{
		Seeds:      NewLog[Seed](SeedCap),
		Echoes:     NewLog[Text](EchoCap),
		Phrases:    NewLog[Phrase](PhraseCap),
		Plants:     NewLog[Text](PlantCap),
		Strokes:    NewLog[Stroke](StrokeCap),
		Writings:   NewLog[Text](WritingCap),
		Exchanges:  NewLog[Exchange](ExchangeCap),
		Broadcasts: NewLog[Broadcast](BroadcastCap),
		Graffiti:   NewLog[Text](GraffitiCap),
		Ash:        NewLog[Text](AshCap),
		Voices:     NewLog[Voice](VoiceCap),
		Pulse:      newPulse(),
		Footprints: newFootprints(),
	}
}

// Seed is a message planted in a particular room's soil.
type Seed struct {
	Room string
	Text string
}

// Text is the payload shared by the single-text rooms: well echoes, garden
// plants, study writings, labyrinth graffiti, and furnace ash.
type Text struct {
	Text string
}

// Phrase is a short run of notes played on the instrument.
type Phrase struct {
	Notes []float64
}

// Point is one sample of a sketchpad stroke.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is a drawn line on the shared sketchpad.
type Stroke struct {
	Points []Point
	Hue    float64
	Width  float64
}

// Exchange is a séance question and the response it received.
type Exchange struct {
	Question string
	Response string
}

// Broadcast is a message left on a radio frequency.
type Broadcast struct {
	Freq float64
	Text string
}

// Voice is a sustained tone in the choir, placed in space.
type Voice struct {
	X    float64
	Y    float64
	Freq float64
}
