package generator

// PaletteID identifies one of the fixed story palettes
type PaletteID string

const (
	PaletteCelebration PaletteID = "celebration"
	PaletteAdventure   PaletteID = "adventure"
	PaletteCommunity   PaletteID = "community"
	PaletteSpotlight   PaletteID = "spotlight"
)

// Palette is a themed bundle of templates, tags, tones and locations.
// Template strings may contain {subject}, {subjectLower} and {tonal}.
type Palette struct {
	ID           PaletteID `json:"id"`
	Keywords     []string  `json:"keywords"`
	Headlines    []string  `json:"headlines"`
	Subheadlines []string  `json:"subheadlines"`
	Openers      []string  `json:"openers"`
	Developments []string  `json:"developments"`
	Closings     []string  `json:"closings"`
	Quotes       []string  `json:"quotes"`
	Tags         []string  `json:"tags"`
	Locations    []string  `json:"locations"`
	Tones        []string  `json:"tones"`
}

// bylines are shared by every palette
var bylines = []string{
	"By the Family Gazette Newsroom",
	"By Our Junior Reporting Team",
	"By the Weekend Desk",
	"By the Kitchen Table Bureau",
}

// palettes is scanned in order during classification; spotlight must stay
// last because it has no keywords.
var palettes = []Palette{
	{
		ID: PaletteCelebration,
		Keywords: []string{
			"birthday", "party", "celebrat", "anniversary", "cake", "wedding",
			"holiday", "christmas", "halloween", "thanksgiving", "graduation",
			"festival", "surprise", "balloon", "candles", "new year",
		},
		Headlines: []string{
			"{subject} Sparks {tonal} Celebrations",
			"Confetti Report: {subject} Steals the Show",
			"{tonal} Cheers Ring Out for {subject}",
			"Hometown Hearts Gather for {subject}",
		},
		Subheadlines: []string{
			"Guests describe the afternoon as {tonal}, filled with laughter, snacks and at least one very brave dance move.",
			"Family historians are already calling it one of the most {tonal} gatherings of the year.",
			"Balloons, giggles and the {tonal} mood carried the day from start to finish.",
		},
		Openers: []string{
			"{subjectLower} turned an ordinary day into the kind of {tonal} event that nobody in the family will forget.",
			"It started with a whisper and ended with a cheer: {subjectLower} brought everyone together in the most {tonal} way.",
			"Reporters on the scene confirm that {subjectLower} was every bit as {tonal} as the invitations promised.",
		},
		Developments: []string{
			"As the festivities picked up speed, relatives traded stories, shared treats and took turns posing for the official photo.",
			"Witnesses say the highlight came when the whole group counted down together and the room erupted in applause.",
			"Between bites of cake and rounds of silly games, the youngest guests kept the energy wonderfully high.",
			"Even the family pet seemed to understand the importance of the moment, wagging along with every song.",
		},
		Closings: []string{
			"When the last balloon drifted off, one thing was clear: {subjectLower} will be retold at many dinners to come.",
			"The Gazette will continue to follow this story, but early reports suggest the celebration was a complete success.",
			"Plans for next year are already underway, and organizers promise it will be just as {tonal}.",
		},
		Quotes: []string{
			"\"This was the best day ever, and I want to do it again tomorrow!\"",
			"\"I laughed so hard my cheeks still hurt.\"",
			"\"We should have a party like this every single week.\"",
		},
		Tags:      []string{"Celebrations", "Family Life", "Milestones"},
		Locations: []string{"Backyard Bash", "Living Room", "Party Central", "Grandma's House", "Community Hall"},
		Tones:     []string{"joyful", "sparkling", "heartwarming", "unforgettable", "festive"},
	},
	{
		ID: PaletteAdventure,
		Keywords: []string{
			"hike", "hiking", "trail", "camp", "beach", "mountain", "forest",
			"trip", "travel", "adventure", "explore", "park", "lake", "river",
			"road trip", "vacation", "zoo", "museum",
		},
		Headlines: []string{
			"Expedition Update: {subject} Conquers New Ground",
			"{tonal} Explorers Chart {subject}",
			"Field Notes From {subject}",
		},
		Subheadlines: []string{
			"The team returned with muddy shoes, full hearts and one {tonal} story to tell.",
			"Maps were consulted, snacks were rationed and spirits stayed {tonal} the whole way.",
			"Our correspondents tracked every {tonal} step of the journey.",
			"Scientists agree the outing was equal parts brave and {tonal}.",
		},
		Openers: []string{
			"{subjectLower} began with packed bags and a plan, and quickly turned into something truly {tonal}.",
			"The expedition known as {subjectLower} set out early, determined to discover something new.",
			"Few journeys are as {tonal} as {subjectLower}, according to everyone who came along.",
			"Armed with water bottles and curiosity, the family launched {subjectLower}.",
		},
		Developments: []string{
			"Along the way the explorers spotted interesting rocks, curious birds and at least one suspicious puddle.",
			"At the halfway point, the crew paused to catch their breath and admire the view.",
			"Navigation duties rotated between team members, with only a few minor detours.",
		},
		Closings: []string{
			"By the time they headed home, the adventurers were already planning their next mission.",
			"The Gazette salutes these brave explorers and their {tonal} spirit of discovery.",
			"Souvenirs collected on the trip will be displayed in the family museum, also known as the fridge.",
			"Tired feet and happy faces marked the end of a truly {tonal} day.",
		},
		Quotes: []string{
			"\"I want to go even farther next time!\"",
			"\"My legs are tired but my brain is happy.\"",
			"\"That was the coolest thing I have ever seen.\"",
			"\"Can we bring a bigger snack bag next time?\"",
		},
		Tags:      []string{"Adventure Log", "Outdoors", "Family Travel"},
		Locations: []string{"Trailhead", "Base Camp", "Lakeside", "Summit Ridge"},
		Tones:     []string{"daring", "adventurous", "breathtaking", "bold"},
	},
	{
		ID: PaletteCommunity,
		Keywords: []string{
			"school", "team", "game", "friends", "neighbor", "volunteer",
			"community", "class", "church", "garden", "practice", "recital",
			"concert", "market", "library", "club",
		},
		Headlines: []string{
			"{subject} Brings the Neighborhood Together",
			"Local Heroes Shine at {subject}",
			"{tonal} Teamwork Powers {subject}",
			"Community Spotlight: {subject}",
			"Friends and Neighbors Rally Around {subject}",
		},
		Subheadlines: []string{
			"Neighbors, friends and teammates pitched in to make the day {tonal}.",
			"The {tonal} turnout proves that good things happen when people work together.",
			"Organizers praised the {tonal} spirit that filled every corner of the event.",
		},
		Openers: []string{
			"{subjectLower} showed how {tonal} a community can be when everyone lends a hand.",
			"On a day marked by smiles and high fives, {subjectLower} took center stage.",
			"Everyone who attended agrees that {subjectLower} set the standard for {tonal} teamwork.",
		},
		Developments: []string{
			"Volunteers shared jobs, cheered one another on and made sure nobody was left out.",
			"The crowd grew as word spread, and soon the whole block seemed to be involved.",
			"Coaches, teachers and parents all noted how kindly the kids treated one another.",
			"Small acts of help added up to something big, just as everyone had hoped.",
			"New friendships were formed and old ones grew even stronger.",
		},
		Closings: []string{
			"The Gazette thanks everyone who made {subjectLower} possible.",
			"Organizers hope to make this a regular tradition for the neighborhood.",
			"As the day wrapped up, participants left with new friends and {tonal} memories.",
		},
		Quotes: []string{
			"\"Everybody helped, and that is what made it awesome.\"",
			"\"I made three new friends today!\"",
			"\"We did it together, and that is the best part.\"",
		},
		Tags:      []string{"Community", "Friends & Neighbors", "Local News"},
		Locations: []string{"Main Street", "School Gym", "Neighborhood Park", "Town Square", "Library Lawn", "Corner Market"},
		Tones:     []string{"inspiring", "uplifting", "neighborly", "proud", "cheerful"},
	},
	{
		ID:       PaletteSpotlight,
		Keywords: []string{},
		Headlines: []string{
			"Family Spotlight: {subject}",
			"Breaking News: {subject} Captures Hearts",
			"{tonal} Moments From {subject}",
		},
		Subheadlines: []string{
			"This {tonal} snapshot of everyday life reminds readers that small moments matter.",
			"Our photographers were on hand to capture a truly {tonal} scene.",
			"Sources confirm the moment was as {tonal} as it looks.",
		},
		Openers: []string{
			"{subjectLower} may look like a simple snapshot, but the story it tells is truly {tonal}.",
			"Today the Gazette turns its lens to {subjectLower}, a moment worth remembering.",
			"Every family has its headline moments, and {subjectLower} is one of them.",
			"Sometimes the best news is close to home, as {subjectLower} proves.",
		},
		Developments: []string{
			"Those who were there describe a scene full of smiles, small surprises and plenty of love.",
			"Looking closely at the picture, readers will notice details that make this moment special.",
			"Family members say they knew right away that this was a picture worth saving.",
		},
		Closings: []string{
			"The Gazette is proud to feature this {tonal} memory on today's front page.",
			"Stay tuned for more stories from the most important newsroom of all: home.",
			"This moment now joins the family archive, ready to be enjoyed again and again.",
		},
		Quotes: []string{
			"\"I love this picture so much.\"",
			"\"Let's put this one on the fridge!\"",
			"\"This is going in the family album for sure.\"",
		},
		Tags:      []string{"Spotlight", "Family Moments"},
		Locations: []string{"Hometown", "Family Headquarters", "Front Porch", "Kitchen Table"},
		Tones:     []string{"delightful", "charming", "sweet", "memorable", "wonderful", "cozy"},
	},
}

// Palettes returns copies of the palette table in classification order
func Palettes() []Palette {
	out := make([]Palette, len(palettes))
	for i, p := range palettes {
		out[i] = p.clone()
	}
	return out
}

func (p Palette) clone() Palette {
	return Palette{
		ID:           p.ID,
		Keywords:     append([]string{}, p.Keywords...),
		Headlines:    append([]string(nil), p.Headlines...),
		Subheadlines: append([]string(nil), p.Subheadlines...),
		Openers:      append([]string(nil), p.Openers...),
		Developments: append([]string(nil), p.Developments...),
		Closings:     append([]string(nil), p.Closings...),
		Quotes:       append([]string(nil), p.Quotes...),
		Tags:         append([]string(nil), p.Tags...),
		Locations:    append([]string(nil), p.Locations...),
		Tones:        append([]string(nil), p.Tones...),
	}
}
