package translate

import "context"

// Script ratio thresholds for claiming a text is written in a CJK language.
// Kana is sparser in Japanese text (kanji carries much of it), hence the
// lower bar.
const (
	hanRatioThreshold    = 0.3
	kanaRatioThreshold   = 0.15
	hangulRatioThreshold = 0.3
)

// ScriptDetector is a local, zero-dependency Detector based on Unicode script
// ratios. It only claims the three CJK languages; everything else detects as
// "und", which the gate treats as "translate". It stands in for a real
// backend when none is configured and keeps tests hermetic.
type ScriptDetector struct{}

func (ScriptDetector) DetectLanguage(_ context.Context, text string) (string, error) {
	runes := []rune(text)
	if len(runes) == 0 {
		return "und", nil
	}

	var han, kana, hangul int
	for _, r := range runes {
		switch {
		case r >= 0x4E00 && r <= 0x9FFF:
			han++
		case r >= 0x3040 && r <= 0x30FF:
			kana++
		case r >= 0xAC00 && r <= 0xD7AF:
			hangul++
		}
	}

	total := float64(len(runes))
	switch {
	case float64(kana)/total > kanaRatioThreshold:
		return "ja", nil
	case float64(hangul)/total > hangulRatioThreshold:
		return "ko", nil
	case float64(han)/total > hanRatioThreshold:
		return "zh", nil
	}
	return "und", nil
}
