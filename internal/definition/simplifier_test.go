package definition

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{
			name:   "trailing section without part of speech",
			raw:    "英文释义：a cat 中文释义：  猫；猫科动物  ",
			want:   "猫；猫科动物",
			wantOK: true,
		},
		{
			name:   "section ends before the part-of-speech marker",
			raw:    "中文释义：跑；奔跑 词性：v.",
			want:   "跑；奔跑",
			wantOK: true,
		},
		{
			name:   "half-width colon markers",
			raw:    "中文释义: 狗 词性: n.",
			want:   "狗",
			wantOK: true,
		},
		{
			name:   "part-of-speech marker before the prefix is ignored",
			raw:    "词性：n. 中文释义：书",
			want:   "书",
			wantOK: true,
		},
		{
			name:   "multi-line section",
			raw:    "中文释义：\n1. 猫\n2. 刻薄的女人\n",
			want:   "1. 猫\n2. 刻薄的女人",
			wantOK: true,
		},
		{
			name:   "no prefix marker",
			raw:    "英文释义：a cat",
			wantOK: false,
		},
		{
			name:   "empty input",
			raw:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{
			name:   "parenthetical is removed",
			raw:    "中文释义：猫；狗（宠物）",
			want:   "猫；狗",
			wantOK: true,
		},
		{
			name:   "half-width parentheses and commas",
			raw:    "中文释义：跑 (快速地), 奔跑",
			want:   "跑",
			wantOK: true,
		},
		{
			name:   "numbered list keeps first clause of each item",
			raw:    "中文释义：1. 猫，家猫 2、刻薄的女人; 泼妇 词性：n.",
			want:   "猫；刻薄的女人",
			wantOK: true,
		},
		{
			name:   "newline separated items",
			raw:    "中文释义：银行，储蓄所\n河岸（河流的）",
			want:   "银行；河岸",
			wantOK: true,
		},
		{
			name:   "nested parentheses",
			raw:    "中文释义：书（书籍（纸质））",
			want:   "书",
			wantOK: true,
		},
		{
			name:   "nothing survives",
			raw:    "中文释义：（仅用于复数）",
			wantOK: false,
		},
		{
			name:   "no Chinese section",
			raw:    "英文释义：a cat",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Simplify(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "（")
		})
	}
}

func TestSimplifier_UltraSimplify(t *testing.T) {
	tests := []struct {
		name       string
		simplified string
		wantOneOf  []string
	}{
		{
			name:       "part-of-speech tags are stripped",
			simplified: "n. 猫；v. 跑",
			wantOneOf:  []string{"猫", "跑"},
		},
		{
			name:       "all listed tags",
			simplified: "adj. 快的；adv. 快地；prep. 在；pron. 他；conj. 和；interj. 哎；int. 哇",
			wantOneOf:  []string{"快的", "快地", "在", "他", "和", "哎", "哇"},
		},
		{
			name:       "single clause without tag",
			simplified: "书",
			wantOneOf:  []string{"书"},
		},
		{
			name:       "falls back to input when nothing survives",
			simplified: "；；",
			wantOneOf:  []string{"；；"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSimplifier(rand.New(rand.NewSource(42)))
			for range 20 {
				assert.Contains(t, tt.wantOneOf, s.UltraSimplify(tt.simplified))
			}
		})
	}
}

func TestSimplifier_UltraSimplify_VariesAcrossCalls(t *testing.T) {
	s := NewSimplifier(rand.New(rand.NewSource(7)))
	seen := map[string]bool{}
	for range 100 {
		seen[s.UltraSimplify("n. 猫；v. 跑；adj. 快的")] = true
	}
	assert.Len(t, seen, 3)
}

func TestSimplifier_Render(t *testing.T) {
	raw := "中文释义：n. 猫（宠物）；v. 偷偷地走 词性：n."

	tests := []struct {
		name      string
		level     Level
		wantOneOf []string
		wantOK    bool
	}{
		{name: "extract", level: LevelExtract, wantOneOf: []string{"n. 猫（宠物）；v. 偷偷地走"}, wantOK: true},
		{name: "simplify", level: LevelSimplified, wantOneOf: []string{"n. 猫；v. 偷偷地走"}, wantOK: true},
		{name: "ultra", level: LevelUltra, wantOneOf: []string{"猫", "偷偷地走"}, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewSimplifier(rand.New(rand.NewSource(1))).Render(raw, tt.level)
			assert.Equal(t, tt.wantOK, ok)
			assert.Contains(t, tt.wantOneOf, got)
		})
	}

	t.Run("ultra without Chinese section", func(t *testing.T) {
		_, ok := NewSimplifier(nil).Render("英文释义：cat", LevelUltra)
		assert.False(t, ok)
	})
}

func TestLevel_Set(t *testing.T) {
	var level Level
	assert.NoError(t, level.Set("ultra"))
	assert.Equal(t, LevelUltra, level)
	assert.Error(t, level.Set("tiny"))
	assert.Equal(t, "Level", level.Type())
}
