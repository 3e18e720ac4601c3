// ABOUTME: Fixed table of tone presets with axes, examples, and recommendations
// ABOUTME: Order matters: recommendation and command matching walk it front to back
package models

// Preset identifiers
const (
	PresetCasual         = "casual"
	PresetProfessional   = "professional"
	PresetFunny          = "funny"
	PresetInspirational  = "inspirational"
	PresetBold           = "bold"
	PresetFriendly       = "friendly"
	PresetAuthoritative  = "authoritative"
	PresetConversational = "conversational"
)

// DefaultRecommendedPreset is used when no preset lists the business type
const DefaultRecommendedPreset = PresetFriendly

// TonePreset is a named axis triple plus canned example phrases
type TonePreset struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Axes        ToneAxes `json:"axes"`
	Examples    []string `json:"examples"`
	BestFor     []string `json:"best_for"`
}

var tonePresets = []TonePreset{
	{
		ID:          PresetCasual,
		DisplayName: "Casual",
		Description: "Relaxed and approachable, like chatting with a regular customer",
		Axes:        ToneAxes{Formality: 2, Humor: 1, Enthusiasm: 3},
		Examples: []string{
			"Swing by this weekend, we saved you a seat.",
			"No fuss, just good stuff.",
		},
		BestFor: []string{BusinessTypeRestaurant, BusinessTypeRetail, BusinessTypeLocalService},
	},
	{
		ID:          PresetProfessional,
		DisplayName: "Professional",
		Description: "Polished, precise, and credible",
		Axes:        ToneAxes{Formality: 4, Humor: 0, Enthusiasm: 2},
		Examples: []string{
			"Our team delivers measurable results for every client.",
			"Schedule a consultation to discuss your goals.",
		},
		BestFor: []string{BusinessTypeProfessionalServices, BusinessTypeB2BSaaS},
	},
	{
		ID:          PresetFunny,
		DisplayName: "Funny",
		Description: "Playful and witty, never takes itself too seriously",
		Axes:        ToneAxes{Formality: 1, Humor: 3, Enthusiasm: 4},
		Examples: []string{
			"Our croissants have more layers than your favorite drama.",
			"Warning: side effects include smiling.",
		},
		BestFor: []string{"entertainment", "bar"},
	},
	{
		ID:          PresetInspirational,
		DisplayName: "Inspirational",
		Description: "Uplifting and motivating, focused on what is possible",
		Axes:        ToneAxes{Formality: 3, Humor: 0, Enthusiasm: 5},
		Examples: []string{
			"Every big journey starts with one small step.",
			"Your best year starts today.",
		},
		BestFor: []string{"fitness", "coaching", "nonprofit"},
	},
	{
		ID:          PresetBold,
		DisplayName: "Bold",
		Description: "Confident and direct, makes a statement",
		Axes:        ToneAxes{Formality: 2, Humor: 1, Enthusiasm: 5},
		Examples: []string{
			"This is the last coffee you will ever need.",
			"Stop settling. Start winning.",
		},
		BestFor: []string{BusinessTypeEcommerce, "startup"},
	},
	{
		ID:          PresetFriendly,
		DisplayName: "Friendly",
		Description: "Warm and welcoming, like a helpful neighbor",
		Axes:        ToneAxes{Formality: 2, Humor: 1, Enthusiasm: 4},
		Examples: []string{
			"We can't wait to see you!",
			"Questions? Just ask, we're always happy to help.",
		},
		BestFor: []string{"healthcare", "education"},
	},
	{
		ID:          PresetAuthoritative,
		DisplayName: "Authoritative",
		Description: "Expert and commanding, backed by experience",
		Axes:        ToneAxes{Formality: 5, Humor: 0, Enthusiasm: 2},
		Examples: []string{
			"With twenty years of experience, we know what works.",
			"Industry data is clear on this point.",
		},
		BestFor: []string{"legal", "finance"},
	},
	{
		ID:          PresetConversational,
		DisplayName: "Conversational",
		Description: "Natural and personal, written the way people talk",
		Axes:        ToneAxes{Formality: 2, Humor: 2, Enthusiasm: 3},
		Examples: []string{
			"So, here's the thing about our new menu...",
			"Ever wondered why we open at 6am? Let us tell you.",
		},
		BestFor: []string{"media", "creator"},
	},
}

// TonePresets returns the preset table in its fixed order
func TonePresets() []TonePreset {
	out := make([]TonePreset, len(tonePresets))
	for i, p := range tonePresets {
		p.Examples = append([]string{}, p.Examples...)
		p.BestFor = append([]string{}, p.BestFor...)
		out[i] = p
	}
	return out
}

// LookupPreset finds a preset by id
func LookupPreset(id string) (TonePreset, bool) {
	for _, p := range TonePresets() {
		if p.ID == id {
			return p, true
		}
	}
	return TonePreset{}, false
}
