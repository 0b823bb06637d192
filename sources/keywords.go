package sources

// HighWeightKeywords are the core topic terms; each distinct hit contributes
// the larger relevance increment.
var HighWeightKeywords = []string{
	"palestine", "palestinian", "gaza", "west bank", "israel", "israeli",
	"jerusalem", "hamas", "ceasefire", "hostage", "rafah", "khan younis",
	"al-aqsa", "unrwa", "occupation", "intifada",
}

// MediumWeightKeywords are supporting terms; each distinct hit contributes
// the smaller relevance increment.
var MediumWeightKeywords = []string{
	"fatah", "plo", "ramallah", "bethlehem", "hebron", "jenin", "nablus",
	"settlement", "checkpoint", "two-state", "oslo", "abbas", "netanyahu",
	"jabalia", "al-shifa", "nasser hospital", "iron dome", "qassam",
	"settler", "idf", "blockade", "siege", "apartheid",
	"humanitarian aid", "war crimes", "displacement", "refugee camp",
	"aid convoy", "prisoner exchange", "hezbollah", "iran", "lebanon",
	"jordan", "egypt", "qatar", "united nations",
	"humanitarian corridor", "evacuation", "ground invasion", "air strike",
	"rocket attack", "incursion",
}

// AllKeywords is the full admission vocabulary (union of both weight tiers).
var AllKeywords = append(append([]string{}, HighWeightKeywords...), MediumWeightKeywords...)

// HighPriorityKeywords boost publish-queue priority when they appear in a title.
var HighPriorityKeywords = []string{
	"gaza", "hostage", "ceasefire", "airstrike", "civilians",
	"humanitarian", "urgent", "breaking", "killed", "wounded",
}

// SocialKeywords is the vocabulary used when extracting query terms for
// social-signal corroboration.
var SocialKeywords = append(append([]string{}, AllKeywords...),
	"westbank", "breaking", "urgent", "live")

// WatchlistAccounts are social accounts whose posts count as independent
// ground-truth evidence.
var WatchlistAccounts = []string{
	"QudsNen", "Muhtaseb7", "LinahAlsaafin", "MuhammadSmiry",
	"MuhammadShehad2", "IWriteWrongs", "MustafaBarghou1",
	"AymanQwaider", "HindHassanOfficial", "YazanAlSaadi",
}
