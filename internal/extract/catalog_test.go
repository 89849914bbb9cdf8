package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/verdict/internal/model"
)

func TestCatalog_Kinds(t *testing.T) {
	kinds := NewCatalog().Kinds()
	assert.NotContains(t, kinds, model.KindPerson)
	assert.Len(t, kinds, len(model.AllKinds)-1)
}

func TestCatalog_Find(t *testing.T) {
	tests := []struct {
		name string
		kind model.EntityKind
		text string
		want []string
	}{
		{
			name: "numeric branch",
			kind: model.KindCourtBranch,
			text: "در شعبه 12 دادگاه عمومی",
			want: []string{"شعبه 12"},
		},
		{
			name: "masked branch",
			kind: model.KindCourtBranch,
			text: "رسیدگی در شعبه * انجام شد",
			want: []string{"شعبه *"},
		},
		{
			name: "grouped amount keeps separators and unit",
			kind: model.KindAmount,
			text: "مبلغ 1,500,000 ریال بابت اصل خواسته",
			want: []string{"1,500,000 ریال"},
		},
		{
			name: "plain amount",
			kind: model.KindAmount,
			text: "پرداخت 2500 تومان",
			want: []string{"2500 تومان"},
		},
		{
			name: "amount without unit is ignored",
			kind: model.KindAmount,
			text: "عدد 1,500,000 بدون واحد",
			want: nil,
		},
		{
			name: "dates in order",
			kind: model.KindDate,
			text: "مورخ 1402/3/15 و 1399/12/01",
			want: []string{"1402/3/15", "1399/12/01"},
		},
		{
			name: "date outside century range",
			kind: model.KindDate,
			text: "مورخ 1202/3/15",
			want: nil,
		},
		{
			name: "date is not calendar validated",
			kind: model.KindDate,
			text: "تاریخ 1401/13/40",
			want: []string{"1401/13/40"},
		},
		{
			name: "judge name only",
			kind: model.KindJudge,
			text: "رییس شعبه: ح. ر. امضا",
			want: []string{"ح. ر"},
		},
		{
			name: "law reference",
			kind: model.KindLawReference,
			text: "به استناد ماده 198 قانون آیین دادرسی مدنی",
			want: []string{"ماده 198 قانون آیین دادرسی مدنی"},
		},
		{
			name: "redacted phrase",
			kind: model.KindRedacted,
			text: "نام پدر *** ساکن",
			want: []string{"نام پدر ***"},
		},
		{
			name: "place",
			kind: model.KindPlace,
			text: "بیمارستان امام خمینی،",
			want: []string{"بیمارستان امام خمینی"},
		},
		{
			name: "address chain",
			kind: model.KindAddress,
			text: "ساکن تهران خیابان آزادی کوچه 5 پلاک 12 اقامت دارد",
			want: []string{"خیابان آزادی کوچه 5 پلاک 12"},
		},
		{
			name: "address stops before a law citation",
			kind: model.KindAddress,
			text: "خیابان آزادی پلاک 12 ماده 10 قانون مدنی",
			want: []string{"خیابان آزادی پلاک 12"},
		},
		{
			name: "address value stops at an amount unit",
			kind: model.KindAddress,
			text: "شهر کرج خیابان امام ریال",
			want: []string{"شهر کرج خیابان امام"},
		},
		{
			name: "single address keyword is not an address",
			kind: model.KindAddress,
			text: "در خیابان دیده شد",
			want: nil,
		},
	}

	catalog := NewCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range catalog.Find(tt.kind, tt.text) {
				got = append(got, m.Value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_OffsetsAreRunes(t *testing.T) {
	text := "در تاریخ 1402/1/5 صادر شد"
	matches := NewCatalog().Find(model.KindDate, text)
	require.Len(t, matches, 1)

	runes := []rune(text)
	m := matches[0]
	assert.Equal(t, m.Value, string(runes[m.Start:m.Start+len([]rune(m.Value))]))
}

func TestCatalog_RejectsSubwordMatch(t *testing.T) {
	// "بخش" inside "ببخشید" must not open an address component
	matches := NewCatalog().Find(model.KindAddress, "ببخشید خیابان")
	assert.Empty(t, matches)
}

func TestCatalog_ScanCoversEveryKind(t *testing.T) {
	result := NewCatalog().Scan("")
	for _, kind := range NewCatalog().Kinds() {
		_, ok := result[kind]
		assert.True(t, ok, "missing %s", kind)
		assert.Empty(t, result[kind])
	}
}
