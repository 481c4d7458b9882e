package language

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Auto is the pseudo source-language meaning "detect during transcription".
const Auto = "auto"

type entry struct {
	tag     string // BCP-47 tag (e.g. "zh-TW")
	display string // English name
	native  string // Native name
	whisper string // ISO 639-1 code whisper understands
	voice   string // Default edge-tts synthesis voice
}

var languages = []entry{
	{"zh-TW", "Traditional Chinese", "繁體中文", "zh", "zh-TW-HsiaoChenNeural"},
	{"zh-CN", "Simplified Chinese", "简体中文", "zh", "zh-CN-XiaoxiaoNeural"},
	{"ja-JP", "Japanese", "日本語", "ja", "ja-JP-NanamiNeural"},
	{"ko-KR", "Korean", "한국어", "ko", "ko-KR-SunHiNeural"},
	{"en-US", "English", "English", "en", "en-US-JennyNeural"},
	{"de-DE", "German", "Deutsch", "de", "de-DE-KatjaNeural"},
	{"fr-FR", "French", "Français", "fr", "fr-FR-DeniseNeural"},
	{"es-ES", "Spanish", "Español", "es", "es-ES-ElviraNeural"},
	{"it-IT", "Italian", "Italiano", "it", "it-IT-ElsaNeural"},
	{"pt-BR", "Portuguese", "Português", "pt", "pt-BR-FranciscaNeural"},
	{"nl-NL", "Dutch", "Nederlands", "nl", "nl-NL-ColetteNeural"},
	{"pl-PL", "Polish", "Polski", "pl", "pl-PL-ZofiaNeural"},
	{"ru-RU", "Russian", "Русский", "ru", "ru-RU-SvetlanaNeural"},
	{"uk-UA", "Ukrainian", "Українська", "uk", "uk-UA-PolinaNeural"},
	{"cs-CZ", "Czech", "Čeština", "cs", "cs-CZ-VlastaNeural"},
	{"sv-SE", "Swedish", "Svenska", "sv", "sv-SE-SofieNeural"},
	{"da-DK", "Danish", "Dansk", "da", "da-DK-ChristelNeural"},
	{"fi-FI", "Finnish", "Suomi", "fi", "fi-FI-NooraNeural"},
	{"el-GR", "Greek", "Ελληνικά", "el", "el-GR-AthinaNeural"},
	{"hu-HU", "Hungarian", "Magyar", "hu", "hu-HU-NoemiNeural"},
	{"ro-RO", "Romanian", "Română", "ro", "ro-RO-AlinaNeural"},
	{"tr-TR", "Turkish", "Türkçe", "tr", "tr-TR-EmelNeural"},
	{"ar-SA", "Arabic", "العربية", "ar", "ar-SA-ZariyahNeural"},
	{"he-IL", "Hebrew", "עברית", "he", "he-IL-HilaNeural"},
	{"hi-IN", "Hindi", "हिन्दी", "hi", "hi-IN-SwaraNeural"},
	{"vi-VN", "Vietnamese", "Tiếng Việt", "vi", "vi-VN-HoaiMyNeural"},
	{"th-TH", "Thai", "ไทย", "th", "th-TH-PremwadeeNeural"},
	{"id-ID", "Indonesian", "Bahasa Indonesia", "id", "id-ID-GadisNeural"},
	{"ms-MY", "Malay", "Bahasa Melayu", "ms", "ms-MY-YasminNeural"},
}

var byTag map[string]*entry

func init() {
	byTag = make(map[string]*entry, len(languages))
	for i := range languages {
		byTag[strings.ToLower(languages[i].tag)] = &languages[i]
	}
}

// Normalize canonicalizes a user-supplied language tag ("zh_tw", "ZH-tw",
// "ja") into the table's BCP-47 form. Unknown but parseable tags pass through
// canonicalized; unparseable input returns empty.
func Normalize(tag string) string {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return ""
	}
	if strings.EqualFold(trimmed, Auto) {
		return Auto
	}
	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return ""
	}
	canonical := parsed.String()
	if e, ok := byTag[strings.ToLower(canonical)]; ok {
		return e.tag
	}
	// Bare language codes resolve to the table's first matching region.
	base, confidence := parsed.Base()
	if confidence != language.No {
		for i := range languages {
			if languages[i].whisper == base.String() {
				return languages[i].tag
			}
		}
	}
	return canonical
}

// Known reports whether the tag resolves to a table entry.
func Known(tag string) bool {
	_, ok := byTag[strings.ToLower(Normalize(tag))]
	return ok
}

// WhisperCode returns the ISO 639-1 code to pass to the transcription engine,
// or empty for auto/unknown (letting the engine detect).
func WhisperCode(tag string) string {
	if e, ok := byTag[strings.ToLower(Normalize(tag))]; ok {
		return e.whisper
	}
	return ""
}

// Voice returns the default synthesis voice for a target language. Falls back
// to the English voice for unknown tags so synthesis always has a voice.
func Voice(tag string) string {
	if e, ok := byTag[strings.ToLower(Normalize(tag))]; ok {
		return e.voice
	}
	return "en-US-JennyNeural"
}

// DisplayName returns the English name for a tag, or the tag itself when
// unknown.
func DisplayName(tag string) string {
	if e, ok := byTag[strings.ToLower(Normalize(tag))]; ok {
		return e.display
	}
	return tag
}

// Info is one row of the language table, exported for display.
type Info struct {
	Tag     string
	Display string
	Native  string
	Voice   string
}

// All returns every supported language sorted by English name.
func All() []Info {
	out := make([]Info, 0, len(languages))
	for _, e := range languages {
		out = append(out, Info{Tag: e.tag, Display: e.display, Native: e.native, Voice: e.voice})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Display < out[j].Display })
	return out
}
