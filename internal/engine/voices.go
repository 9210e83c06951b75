package engine

import "sort"

// Voice is one catalog entry's metadata.
type Voice struct {
	Gender   string
	Language string
}

// languageCodes maps public language selectors to the single-letter
// codes the Kokoro pipeline expects.
var languageCodes = map[string]string{
	"en-us": "a",
	"en-gb": "b",
	"es":    "e",
	"fr":    "f",
	"hi":    "h",
	"it":    "i",
	"ja":    "j",
	"pt-br": "p",
	"zh":    "z",
}

// voiceCatalog mirrors the voice set shipped with the Kokoro model.
var voiceCatalog = map[string]Voice{
	"af_heart":   {Gender: "female", Language: "American English"},
	"af_alloy":   {Gender: "female", Language: "American English"},
	"af_aoede":   {Gender: "female", Language: "American English"},
	"af_bella":   {Gender: "female", Language: "American English"},
	"af_jessica": {Gender: "female", Language: "American English"},
	"af_kore":    {Gender: "female", Language: "American English"},
	"af_nicole":  {Gender: "female", Language: "American English"},
	"af_nova":    {Gender: "female", Language: "American English"},
	"af_river":   {Gender: "female", Language: "American English"},
	"af_sarah":   {Gender: "female", Language: "American English"},
	"af_sky":     {Gender: "female", Language: "American English"},
	"am_adam":    {Gender: "male", Language: "American English"},
	"am_echo":    {Gender: "male", Language: "American English"},
	"am_eric":    {Gender: "male", Language: "American English"},
	"am_fenrir":  {Gender: "male", Language: "American English"},
	"am_liam":    {Gender: "male", Language: "American English"},
	"am_michael": {Gender: "male", Language: "American English"},
	"am_onyx":    {Gender: "male", Language: "American English"},
	"am_puck":    {Gender: "male", Language: "American English"},
	"am_santa":   {Gender: "male", Language: "American English"},

	"bf_alice":    {Gender: "female", Language: "British English"},
	"bf_emma":     {Gender: "female", Language: "British English"},
	"bf_isabella": {Gender: "female", Language: "British English"},
	"bf_lily":     {Gender: "female", Language: "British English"},
	"bm_daniel":   {Gender: "male", Language: "British English"},
	"bm_fable":    {Gender: "male", Language: "British English"},
	"bm_george":   {Gender: "male", Language: "British English"},
	"bm_lewis":    {Gender: "male", Language: "British English"},

	"jf_alpha":      {Gender: "female", Language: "Japanese"},
	"jf_gongitsune": {Gender: "female", Language: "Japanese"},
	"jf_nezumi":     {Gender: "female", Language: "Japanese"},
	"jf_tebukuro":   {Gender: "female", Language: "Japanese"},
	"jm_kumo":       {Gender: "male", Language: "Japanese"},

	"zf_xiaobei":  {Gender: "female", Language: "Mandarin Chinese"},
	"zf_xiaoni":   {Gender: "female", Language: "Mandarin Chinese"},
	"zf_xiaoxiao": {Gender: "female", Language: "Mandarin Chinese"},
	"zf_xiaoyi":   {Gender: "female", Language: "Mandarin Chinese"},
	"zm_yunjian":  {Gender: "male", Language: "Mandarin Chinese"},
	"zm_yunxi":    {Gender: "male", Language: "Mandarin Chinese"},
	"zm_yunxia":   {Gender: "male", Language: "Mandarin Chinese"},
	"zm_yunyang":  {Gender: "male", Language: "Mandarin Chinese"},

	"ef_dora":  {Gender: "female", Language: "Spanish"},
	"em_alex":  {Gender: "male", Language: "Spanish"},
	"em_santa": {Gender: "male", Language: "Spanish"},

	"ff_siwis": {Gender: "female", Language: "French"},

	"hf_alpha": {Gender: "female", Language: "Hindi"},
	"hf_beta":  {Gender: "female", Language: "Hindi"},
	"hm_omega": {Gender: "male", Language: "Hindi"},
	"hm_psi":   {Gender: "male", Language: "Hindi"},

	"if_sara":   {Gender: "female", Language: "Italian"},
	"im_nicola": {Gender: "male", Language: "Italian"},

	"pf_dora":  {Gender: "female", Language: "Brazilian Portuguese"},
	"pm_alex":  {Gender: "male", Language: "Brazilian Portuguese"},
	"pm_santa": {Gender: "male", Language: "Brazilian Portuguese"},
}

// LookupVoice returns a catalog entry's metadata.
func LookupVoice(id string) (Voice, bool) {
	v, ok := voiceCatalog[id]
	return v, ok
}

// VoiceIDs returns every catalog voice id, sorted.
func VoiceIDs() []string {
	ids := make([]string, 0, len(voiceCatalog))
	for id := range voiceCatalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SupportedLanguages returns the language selectors the catalog
// variant accepts, sorted.
func SupportedLanguages() []string {
	langs := make([]string, 0, len(languageCodes))
	for lang := range languageCodes {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
