package normalize

// entry is one literal dictionary row.
type entry struct {
	key   string
	value string
}

// expansion is the spoken form of a Kyrgyz institutional abbreviation.
// Possessive expansions already end in a third-person possessive marker
// ("республикасы") and take the pronominal "н" before case suffixes.
type expansion struct {
	text       string
	possessive bool
}

// shortAbbreviations are dotted and hyphenated Kyrgyz abbreviations.
// They are matched case-sensitively so that initials ("К. Алымбеков") are not
// mistaken for "к." (кылым).
var shortAbbreviations = []entry{
	{"ж.б.у.с.", "жана башка ушул сыяктуу"},
	{"ж.б.", "жана башка"},
	{"б.з.ч.", "биздин заманга чейин"},
	{"б.з.ч", "биздин заманга чейин"},
	{"б.з.", "биздин заман"},
	{"кк.", "кылымдар"},
	{"жж.", "жылдар"},
	{"к.", "кылым"},
	{"көч.", "көчөсү"},
	{"м-н", "менен"},
	{"б-ча", "боюнча"},
	{"ж-а", "жана"},
	{"т.б.", "тагыраак болсо"},
	{"ө.к.", "өңдүү көп"},
	{"б.а.", "башкача айтканда"},
	{"мис.", "мисалы"},
	{"проф.", "профессор"},
	{"акад.", "академик"},
	{"обл.", "облусу"},
}

// institutionalAbbreviations are uppercase Kyrgyz abbreviations that may
// carry a case suffix in the source text ("КРнын", "БУУга").
var institutionalAbbreviations = map[string]expansion{
	"КР":     {"кыргыз республикасы", true},
	"КТЖ":    {"кыргыз темир жолу", true},
	"ЖОЖ":    {"жогорку окуу жайы", true},
	"КМШ":    {"көз карандысыз мамлекеттердин шериктештиги", true},
	"ААК":    {"ачык акционердик коом", false},
	"ЖЧК":    {"жоопкерчилиги чектелген коом", false},
	"БУУ":    {"бириккен улуттар уюму", true},
	"АКШ":    {"америка кошмо штаттары", true},
	"БШК":    {"борбордук шайлоо комиссиясы", true},
	"ШКУ":    {"шанхай кызматташтык уюму", true},
	"ЕККУ":   {"европа коопсуздук жана кызматташуу уюму", true},
	"ЕБ":     {"европалык биримдик", false},
	"ЕАЭБ":   {"евразия экономикалык биримдиги", true},
	"СССР":   {"советтик социалисттик республикалар союзу", false},
	"ФСК":    {"сорос кыргызстан фонду", true},
	"ЭЭА":    {"эркин экономикалык аймак", false},
	"ПРООН":  {"бириккен улуттар уюмунун өнүктүрүү программасы", true},
	"UNICEF": {"бириккен улуттар уюмунун балдар фонду", true},
	"USAID":  {"америка кошмо штаттарынын эл аралык өнүктүрүү агенттиги", true},
	"ИДП":    {"ички дүң продукциясы", true},
	"ЖМК":    {"жалпыга маалымдоо каражаттары", true},
	"ЖАМК":   {"жаза аткаруу мамлекеттик кызматы", true},
	"УКМК":   {"улуттук коопсуздук мамлекеттик комитети", true},
	"ТИМ":    {"тышкы иштер министрлиги", true},
	"ӨКМ":    {"өзгөчө кырдаалдар министрлиги", true},
	"ИИМ":    {"ички иштер министрлиги", true},
	"ОИИБ":   {"облустук ички иштер башкармалыгы", true},
	"ШИИББ":  {"шаардык ички иштер башкы башкармалыгы", true},
	"РИИБ":   {"райондук ички иштер башкармалыгы", true},
	"ЧЧК":    {"чоң чүй каналы", true},
}

// caseSuffixes are the case endings recognized after an institutional
// abbreviation. They are re-harmonized against the expansion.
var caseSuffixes = []string{
	"нын", "нун", "нүн", "нин", "дын", "дун", "дүн", "дин", "тын", "тун", "түн", "тин",
	"дан", "ден", "тан", "тен", "дон", "дөн", "тон", "төн",
	"га", "ге", "ка", "ке", "го", "гө", "ко", "кө",
	"да", "де", "та", "те", "до", "дө", "то", "тө",
	"ны", "ни", "ну", "нү", "ды", "ди", "ду", "дү",
	"н", "ы", "и", "у", "ү",
}

// englishAbbreviations are read letter by letter, as pronounced in Kyrgyz.
var englishAbbreviations = map[string]string{
	"IT":    "ай ти",
	"AI":    "эй ай",
	"GPU":   "жи пи ю",
	"CPU":   "си пи ю",
	"ML":    "эм эл",
	"API":   "эй пи ай",
	"URL":   "ю ар эл",
	"HTTP":  "эйч ти ти пи",
	"HTTPS": "эйч ти ти пи эс",
	"HTML":  "эйч ти эм эл",
	"CSS":   "си эс эс",
	"PDF":   "пи ди эф",
	"USB":   "ю эс би",
	"WiFi":  "вай фай",
	"GPS":   "жи пи эс",
	"SMS":   "эс эм эс",
	"SIM":   "сим",
	"PIN":   "пин",
	"ATM":   "эй ти эм",
	"VPN":   "ви пи эн",
	"iOS":   "ай о эс",
	"RAM":   "рам",
	"ROM":   "ром",
	"SSD":   "эс эс ди",
	"HDD":   "эйч ди ди",
	"LED":   "лед",
	"LCD":   "эл си ди",
	"TV":    "ти ви",
	"DVD":   "ди ви ди",
	"CD":    "си ди",
	"PR":    "пи ар",
	"HR":    "эйч ар",
	"CEO":   "си и о",
	"ID":    "ай ди",
	"OK":    "окей",
	"QR":    "кю ар",
}

// latinLetters names Latin letters for acronyms missing from englishAbbreviations.
var latinLetters = map[rune]string{
	'A': "эй", 'B': "би", 'C': "си", 'D': "ди", 'E': "и", 'F': "эф", 'G': "жи",
	'H': "эйч", 'I': "ай", 'J': "жей", 'K': "кей", 'L': "эл", 'M': "эм", 'N': "эн",
	'O': "о", 'P': "пи", 'Q': "кю", 'R': "ар", 'S': "эс", 'T': "ти", 'U': "ю",
	'V': "ви", 'W': "дабл ю", 'X': "экс", 'Y': "уай", 'Z': "зед",
}

// units maps measurement unit symbols to their spoken names.
var units = []entry{
	{"км/ч", "километр саатына"},
	{"km/h", "километр саатына"},
	{"м/с", "метр секундасына"},
	{"m/s", "метр секундасына"},
	{"км²", "квадрат километр"},
	{"km²", "квадрат километр"},
	{"см²", "квадрат сантиметр"},
	{"м²", "квадрат метр"},
	{"m²", "квадрат метр"},
	{"м³", "куб метр"},
	{"m³", "куб метр"},
	{"км", "километр"},
	{"см", "сантиметр"},
	{"мм", "миллиметр"},
	{"кг", "килограмм"},
	{"мг", "миллиграмм"},
	{"мл", "миллилитр"},
	{"га", "гектар"},
	{"кВт", "киловатт"},
	{"МВт", "мегаватт"},
	{"Вт", "ватт"},
	{"ГГц", "гигагерц"},
	{"МГц", "мегагерц"},
	{"кГц", "килогерц"},
	{"Гц", "герц"},
	{"ГБ", "гигабайт"},
	{"МБ", "мегабайт"},
	{"КБ", "килобайт"},
	{"ТБ", "терабайт"},
	{"мин", "мүнөт"},
	{"мүн", "мүнөт"},
	{"сек", "секунд"},
	{"саат", "саат"},
	{"м", "метр"},
	{"г", "грамм"},
	{"т", "тонна"},
	{"л", "литр"},
	{"km", "километр"},
	{"cm", "сантиметр"},
	{"mm", "миллиметр"},
	{"kg", "килограмм"},
	{"mg", "миллиграмм"},
	{"ml", "миллилитр"},
	{"ha", "гектар"},
	{"kW", "киловатт"},
	{"MW", "мегаватт"},
	{"GHz", "гигагерц"},
	{"MHz", "мегагерц"},
	{"kHz", "килогерц"},
	{"Hz", "герц"},
	{"GB", "гигабайт"},
	{"MB", "мегабайт"},
	{"KB", "килобайт"},
	{"TB", "терабайт"},
	{"min", "мүнөт"},
	{"sec", "секунд"},
	{"m", "метр"},
	{"g", "грамм"},
	{"l", "литр"},
	{"W", "ватт"},
	{"h", "саат"},
}

// currencySymbols maps currency signs to their spoken names.
var currencySymbols = map[string]string{
	"$": "доллар",
	"€": "евро",
	"₽": "рубль",
	"¥": "юань",
	"£": "фунт",
	"₸": "тенге",
	"₴": "гривна",
}

// largeNumbers maps abbreviated magnitudes to words.
var largeNumbers = map[string]string{
	"млн":  "миллион",
	"млрд": "миллиард",
	"трлн": "триллион",
	"тыс":  "миң",
}

// months maps a month number to its name.
var months = [...]string{
	"", "январь", "февраль", "март", "апрель", "май", "июнь",
	"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
}

// symbolWords are spoken forms of standalone symbols.
var symbolWords = map[string]string{
	"%": "пайыз",
	"№": "номур",
	"@": "эт белгиси",
	"&": "жана",
	"§": "параграф",
	"©": "автордук укук",
	"®": "катталган",
	"™": "соода белгиси",
	"°": "градус",
	"×": "көбөйтүү",
	"÷": "бөлүү",
	"±": "кошуу кемитүү",
	"≈": "болжол менен",
	"≠": "барабар эмес",
	"≤": "кичине же барабар",
	"≥": "чоң же барабар",
	"=": "барабар",
	"+": "кошуу",
	"<": "кичине",
	">": "чоң",
}

// operatorWords are spoken arithmetic operators.
var operatorWords = map[string]string{
	"+": "кошуу",
	"-": "кемитүү",
	"−": "кемитүү",
	"×": "көбөйтүү",
	"*": "көбөйтүү",
	"x": "көбөйтүү",
	"X": "көбөйтүү",
	"х": "көбөйтүү",
	"Х": "көбөйтүү",
	"/": "бөлүү",
	"÷": "бөлүү",
}
