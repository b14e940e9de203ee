package harmony_test

import (
	"testing"

	"github.com/book-expert/tts-chunker/internal/harmony"
	"github.com/stretchr/testify/assert"
)

func TestAttachSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stem   string
		suffix string
		want   string
	}{
		{name: "genitive after vowel", stem: "уюму", suffix: "нын", want: "уюмунун"},
		{name: "genitive after voiced", stem: "эл", suffix: "нын", want: "элдин"},
		{name: "genitive after voiceless", stem: "мамлекет", suffix: "дын", want: "мамлекеттин"},
		{name: "dative after voiced rounded", stem: "коом", suffix: "га", want: "коомго"},
		{name: "dative after voiceless", stem: "Бишкек", suffix: "га", want: "Бишкекке"},
		{name: "dative after sonorant", stem: "шаар", suffix: "ка", want: "шаарга"},
		{name: "locative front rounded", stem: "үй", suffix: "да", want: "үйдө"},
		{name: "locative after voiceless", stem: "мектеп", suffix: "да", want: "мектепте"},
		{name: "ablative back rounded", stem: "он", suffix: "дан", want: "ондон"},
		{name: "ablative after u keeps a", stem: "суу", suffix: "дан", want: "суудан"},
		{name: "possessive after consonant", stem: "август", suffix: "ы", want: "августу"},
		{name: "possessive inserts s", stem: "жыйырма", suffix: "ы", want: "жыйырмасы"},
		{name: "possessive after sonorant", stem: "январ", suffix: "ы", want: "январы"},
		{name: "empty suffix", stem: "коом", suffix: "", want: "коом"},
		{name: "uppercase suffix", stem: "коом", suffix: "ГА", want: "коомго"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, harmony.AttachSuffix(testCase.stem, testCase.suffix))
		})
	}
}

func TestAttachPossessed(t *testing.T) {
	t.Parallel()

	stem := "кыргыз республикасы"

	assert.Equal(t, stem+"нын", harmony.AttachPossessed(stem, "нын"))
	assert.Equal(t, stem+"на", harmony.AttachPossessed(stem, "га"))
	assert.Equal(t, stem+"нда", harmony.AttachPossessed(stem, "да"))
	assert.Equal(t, stem+"нан", harmony.AttachPossessed(stem, "дан"))
	assert.Equal(t, stem+"н", harmony.AttachPossessed(stem, "ны"))
	assert.Equal(t, "бириккен улуттар уюмуна", harmony.AttachPossessed("бириккен улуттар уюму", "га"))
}

func TestAblative(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"сегиз":   "сегизден",
		"үч":      "үчтөн",
		"беш":     "бештен",
		"жыйырма": "жыйырмадан",
		"жүз":     "жүздөн",
		"миң":     "миңден",
	}

	for word, want := range tests {
		assert.Equal(t, want, harmony.Ablative(word), "word=%s", word)
	}
}

func TestNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "отузда", harmony.Number(30, "да"))
	assert.Equal(t, "беште", harmony.Number(5, "да"))
	assert.Equal(t, "экиге", harmony.Number(2, "га"))
}

func TestLastVowel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 'у', harmony.LastVowel("уюм"))
	assert.Equal(t, 'о', harmony.LastVowel("самолёт"))
	assert.Equal(t, 'а', harmony.LastVowel("Илья"))
	assert.Equal(t, 'е', harmony.LastVowel("мэр"))
	assert.Equal(t, 'ө', harmony.LastVowel("КӨЛ"))
	assert.Equal(t, rune(0), harmony.LastVowel("ЖМК"))
}
