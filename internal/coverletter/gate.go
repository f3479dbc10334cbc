package coverletter

// previewRunes bounds the teaser excerpt returned for locked sections.
const previewRunes = 80

// SectionView is what a client is allowed to see of a single section.
type SectionView struct {
	Text   string `json:"text"`
	Locked bool   `json:"locked"`
}

// View is the gated rendering of a Result.
type View struct {
	Motivation SectionView `json:"motivation"`
	Growth     SectionView `json:"growth"`
	Vision     SectionView `json:"vision"`
}

// Gate maps a result and a payment state to per-section visibility. The
// motivation section stays open as a free teaser; growth and vision are
// withheld server side until the session is paid, so unpaid clients never
// receive the full text. Pure function of its inputs.
func Gate(result *Result, paid bool) View {
	if result == nil {
		return View{}
	}

	return View{
		Motivation: SectionView{Text: result.Motivation},
		Growth:     gateSection(result.Growth, paid),
		Vision:     gateSection(result.Vision, paid),
	}
}

func gateSection(text string, paid bool) SectionView {
	if paid {
		return SectionView{Text: text}
	}
	return SectionView{Text: preview(text), Locked: true}
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes]) + "..."
}
