package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_Digits(t *testing.T) {
	assert.Equal(t, "1402/05/17", String("۱۴۰۲/۰۵/۱۷"))
	assert.Equal(t, "1234/99", String("١٢٣٤/٩٩"))
	assert.Equal(t, "mixed 1,500,000 ریال", String("mixed ۱,۵۰۰,٠٠٠ ریال"))
}

func TestString_InvisibleMarks(t *testing.T) {
	assert.Equal(t, "آییننامه", String("آیین\u200cنامه"))
	assert.Equal(t, "ab", String("a\u200db\u2060"))
}

func TestString_Whitespace(t *testing.T) {
	assert.Equal(t, "رای دادگاه در خصوص", String("  رای \t\n دادگاه  در   خصوص \n"))
	assert.Equal(t, "", String(" \t\n "))
	assert.Equal(t, "a b", String("a \u200c b"))
}

func TestString_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"شماره پرونده: ۱۴۰۱۰۹۹۸۰۰۰۱",
		"  خواهان آقای ع.  م.\u200c  به طرفیت ",
		"٠١٢٣٤٥٦٧٨٩ ۰۱۲۳۴۵۶۷۸۹",
		"a\u200c \u200d b\u2060\tc",
	}
	for _, in := range inputs {
		once := String(in)
		assert.Equal(t, once, String(once), "input %q", in)
	}
}

func TestDigitTable_Bijective(t *testing.T) {
	table := DigitTable()
	assert.Len(t, table, 20)

	persian := map[rune]rune{}
	arabic := map[rune]rune{}
	for native, ascii := range table {
		assert.True(t, ascii >= '0' && ascii <= '9')
		switch {
		case native >= '۰' && native <= '۹':
			persian[ascii] = native
		case native >= '٠' && native <= '٩':
			arabic[ascii] = native
		default:
			t.Fatalf("unexpected source rune %U", native)
		}
	}
	// each alphabet covers all ten ASCII digits exactly once
	assert.Len(t, persian, 10)
	assert.Len(t, arabic, 10)
}

func TestNormalizer(t *testing.T) {
	assert.Equal(t, "12", New().Normalize("۱۲"))
}
