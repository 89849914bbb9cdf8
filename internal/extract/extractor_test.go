package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/verdict/internal/model"
)

func TestExtract_CaseNumberWithoutRulingMarker(t *testing.T) {
	input := "شماره پرونده: 1234/99"
	record := NewExtractor().Extract(model.Document{ID: "doc-1", Text: input})

	assert.Equal(t, "doc-1", record.ID)
	assert.Equal(t, "1234/99", record.CaseInfo.CaseNumber)
	assert.Equal(t, model.UnknownMark, record.CaseInfo.ExecutiveNumber)
	assert.Equal(t, model.UnknownMark, record.CaseInfo.ArchiveNumber)
	assert.Equal(t, input, record.RulingText)
}

func TestExtract_ScopesEntitiesToRulingText(t *testing.T) {
	input := "شماره پرونده ۱۴۰۲/۵۵ بایگانی: 778 مورخ 1401/1/1 رای دادگاه در تاریخ 1402/2/2 خواهان آقای ع. م. مبلغ 1,500,000 ریال"
	record := NewExtractor().Extract(model.Document{ID: "doc-2", Text: input})

	assert.Equal(t, "1402/55", record.CaseInfo.CaseNumber)
	assert.Equal(t, "778", record.CaseInfo.ArchiveNumber)
	assert.True(t, strings.HasPrefix(record.RulingText, model.RulingMarker))
	assert.Equal(t, []string{"1402/2/2"}, record.Dates)
	assert.Contains(t, record.Amounts, "1,500,000 ریال")
	assert.Contains(t, record.Persons, model.PersonMention{Name: "ع. م.", Role: model.RolePlaintiff})
}

func TestExtract_MaskedBranchIsRedacted(t *testing.T) {
	record := NewExtractor().Extract(model.Document{Text: "رسیدگی در شعبه * دادگاه عمومی"})

	assert.Equal(t, model.RedactedMark, record.CourtInfo.Branch)
	assert.Equal(t, []string{model.UnknownMark}, record.CourtInfo.Judges)
}

func TestExtract_EmptyDocument(t *testing.T) {
	record := NewExtractor().Extract(model.Document{ID: "empty"})

	assert.Equal(t, model.UnknownMark, record.CaseInfo.CaseNumber)
	assert.Equal(t, model.UnknownMark, record.CourtInfo.Branch)
	assert.Empty(t, record.Persons)
	assert.NotNil(t, record.Dates)
	assert.Empty(t, record.Dates)
	assert.Equal(t, "", record.RulingText)
}

func TestExtract_NoDuplicatesFirstSeenOrder(t *testing.T) {
	input := "رای دادگاه 1402/1/1 و 1401/5/5 و باز 1402/1/1 و 1401/5/5 و 1400/3/3"
	record := NewExtractor().Extract(model.Document{Text: input})

	assert.Equal(t, []string{"1402/1/1", "1401/5/5", "1400/3/3"}, record.Dates)
}

func TestAssemble_AnnotatorsAppendAfterPattern(t *testing.T) {
	e := NewExtractor()
	ruling := "رای دادگاه خواهان آقای ع. م. علیه ب. ج. در دانشگاه تهران"
	pattern := e.PatternLayer(ruling)

	first := model.Spans{}
	first.Add(
		model.EntitySpan{Text: "ب. ج.", Kind: model.KindPerson, Layer: model.LayerExternal, Source: "a"},
		model.EntitySpan{Text: "تهران", Kind: model.KindPlace, Layer: model.LayerExternal, Source: "a"},
	)
	second := model.Spans{}
	second.Add(
		model.EntitySpan{Text: "ب. ج.", Kind: model.KindPerson, Layer: model.LayerExternal, Source: "b"},
		model.EntitySpan{Text: "ع. م.", Kind: model.KindPerson, Layer: model.LayerExternal, Source: "b"},
	)

	record := e.Assemble("x", model.CaseFields{}, ruling, pattern, first, second)

	require.Len(t, record.Persons, 2)
	assert.Equal(t, "ع. م.", record.Persons[0].Name)
	assert.Equal(t, model.RolePlaintiff, record.Persons[0].Role)
	assert.Equal(t, "ب. ج.", record.Persons[1].Name)
	assert.Equal(t, []string{"دانشگاه تهران", "تهران"}, record.Places)
}

func TestExtract_RulingMarkerIsNotAPlace(t *testing.T) {
	record := NewExtractor().Extract(model.Document{Text: "رای دادگاه در خصوص دعوی بانک ملت"})
	assert.Equal(t, []string{"بانک ملت"}, record.Places)
}

func TestMerge_DropsShortPersons(t *testing.T) {
	layer := model.Spans{}
	layer.Add(
		model.EntitySpan{Text: "ع", Kind: model.KindPerson},
		model.EntitySpan{Text: " ع ", Kind: model.KindPerson},
		model.EntitySpan{Text: "ع. م.", Kind: model.KindPerson},
	)

	merged := Merge(layer)
	assert.Equal(t, []string{"ع. م."}, merged.Texts(model.KindPerson))
}

func TestMerge_KindsAreIndependent(t *testing.T) {
	a := model.Spans{}
	a.Add(model.EntitySpan{Text: "تهران", Kind: model.KindPlace})
	b := model.Spans{}
	b.Add(model.EntitySpan{Text: "تهران", Kind: model.KindAddress})

	merged := Merge(a, b)
	assert.Equal(t, []string{"تهران"}, merged.Texts(model.KindPlace))
	assert.Equal(t, []string{"تهران"}, merged.Texts(model.KindAddress))
}

func TestResolveCourtInfo(t *testing.T) {
	info := ResolveCourtInfo([]string{"شعبه 3", "شعبه 4"}, []string{"شعبه 3", "شعبه 4"}, []string{"ح. ر", "ح. ر", "س. ت"})
	assert.Equal(t, "شعبه 3", info.Branch)
	assert.Equal(t, []string{"ح. ر", "س. ت"}, info.Judges)

	info = ResolveCourtInfo([]string{"شعبه 3", "شعبه **"}, []string{"شعبه 3", "شعبه **"}, nil)
	assert.Equal(t, model.RedactedMark, info.Branch)

	info = ResolveCourtInfo(nil, nil, nil)
	assert.Equal(t, model.UnknownMark, info.Branch)
	assert.Equal(t, []string{model.UnknownMark}, info.Judges)
}

func TestCaseFieldParser_Parse(t *testing.T) {
	p := NewCaseFieldParser()
	fields := p.Parse("شماره پرونده؛ 9909-12 اجراییه شماره: 140/ج بایگانی ***")

	assert.Equal(t, "9909-12", fields.CaseNumber)
	assert.Equal(t, "140/ج", fields.ExecutiveNumber)
	assert.Equal(t, "***", fields.ArchiveNumber)
}
