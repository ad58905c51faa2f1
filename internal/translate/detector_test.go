package translate

import (
	"context"
	"testing"
)

func TestScriptDetector(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"chinese", "今天的新闻非常重要，大家都在讨论这个话题", "zh"},
		{"japanese", "これはとても面白いニュースですね", "ja"},
		{"korean", "오늘 뉴스가 정말 흥미롭습니다", "ko"},
		{"english", "just a plain English sentence", "und"},
		{"empty", "", "und"},
		{"mixed mostly latin", "AI model launch 今天", "und"},
	}

	detector := ScriptDetector{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detector.DetectLanguage(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
