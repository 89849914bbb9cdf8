package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/verdict/internal/model"
)

func TestRoleClassifier_Classify(t *testing.T) {
	tests := []struct {
		name string
		text string
		who  string
		want model.RoleLabel
	}{
		{"plaintiff", "خواهان آقای ع. م. دادخواستی داده", "ع. م.", model.RolePlaintiff},
		{"defendant", "به طرفیت خانم ب. ج. اقامه شد", "ب. ج.", model.RoleDefendant},
		{"judge", "دادرس ح. ر. رای داد", "ح. ر.", model.RoleJudge},
		{"plaintiff wins over judge", "قاضی و خواهان ع. م.", "ع. م.", model.RolePlaintiff},
		{"defendant wins over judge", "قاضی ح. ر. و خوانده", "ح. ر.", model.RoleDefendant},
		{"no keyword", "آقای ع. م. حاضر شد", "ع. م.", model.RoleUnknown},
		{"name absent", "خواهان آقای ع. م.", "ز. ک.", model.RoleUnknown},
		{"empty name", "خواهان", "", model.RoleUnknown},
	}

	c := NewRoleClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text, tt.who))
		})
	}
}

func TestRoleClassifier_UsesFirstOccurrence(t *testing.T) {
	filler := "این متن طولانی برای فاصله انداختن میان کلمات است و نقشی ندارد"
	text := "خواهان ع. م. " + filler + " خوانده ع. م."

	assert.Equal(t, model.RolePlaintiff, NewRoleClassifier().Classify(text, "ع. م."))
}

func TestRoleClassifier_ClassifyAll(t *testing.T) {
	text := "خواهان ع. م. به طرفیت ب. ج."
	persons := NewRoleClassifier().ClassifyAll(text, []string{"ع. م.", "ب. ج."})

	assert.Equal(t, []model.PersonMention{
		{Name: "ع. م.", Role: model.RolePlaintiff},
		{Name: "ب. ج.", Role: model.RolePlaintiff},
	}, persons)
}

func TestContextWindow_MultiByteBounds(t *testing.T) {
	text := "الف ب پ ت ث"
	window := contextWindow(text, 0, len(text), 40)
	assert.Equal(t, text, window)

	// Radius counts runes, not bytes
	start := len("الف ")
	assert.Equal(t, "ف ب پ", contextWindow(text, start, start+len("ب"), 2))
}

func TestRoleKeywords_Copy(t *testing.T) {
	kw := RoleKeywords()
	kw[model.RolePlaintiff][0] = "changed"
	assert.Equal(t, "خواهان", RoleKeywords()[model.RolePlaintiff][0])
}
