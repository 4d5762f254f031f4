package quizgen

import "strings"

// Knowledge holds canonical facts about a well-known concept.
type Knowledge struct {
	Definition      string
	Characteristics []string
	Units           []string
}

// physicsKnowledge is the domain knowledge table. Keys are lower-case terms.
var physicsKnowledge = map[string]Knowledge{
	"енергија": {
		Definition:      "Способност за вршење работа",
		Characteristics: []string{"Се зачувува", "Се трансформира", "Има различни видови"},
		Units:           []string{"Јули (J)", "Калории", "Електронволти"},
	},
	"сила": {
		Definition:      "Влијание што го менува движењето на телото",
		Characteristics: []string{"Има големина и насока", "Се мери во Њутни", "Може да забрзува"},
		Units:           []string{"Њутн (N)", "Килограм-сила"},
	},
	"брзина": {
		Definition:      "Промена на положбата во време",
		Characteristics: []string{"Има големина и насока", "Се мери во m/s", "Може да се менува"},
		Units:           []string{"m/s", "km/h", "km/s"},
	},
	"забрзување": {
		Definition:      "Промена на брзината во време",
		Characteristics: []string{"Се мери во m/s²", "Може да биде позитивно или негативно", "Зависи од силата"},
		Units:           []string{"m/s²", "g (гравитациско забрзување)"},
	},
	"маса": {
		Definition:      "Количество материја во тело",
		Characteristics: []string{"Се мери во килограми", "Не се менува", "Определува инерција"},
		Units:           []string{"кг (kg)", "грам (g)", "тон"},
	},
	"притисок": {
		Definition:      "Сила по единица површина",
		Characteristics: []string{"Се мери во Паскали", "Се пренесува во течности", "Зависи од длабочината"},
		Units:           []string{"Па (Pa)", "атмосфера", "бар"},
	},
	"температура": {
		Definition:      "Мера за топлинската енергија",
		Characteristics: []string{"Се мери во Целзиусови или Келвинови степени", "Определува насока на топлинска размена"},
		Units:           []string{"°C", "°F", "K (Келвин)"},
	},
	"топлина": {
		Definition:      "Енергија што се пренесува поради температурна разлика",
		Characteristics: []string{"Се пренесува од топло кон ладно", "Се мери во Јули", "Може да промени температура"},
		Units:           []string{"Ј (J)", "калории", "kWh"},
	},
	"електрична": {
		Definition:      "Сврзана со електрични полнежи",
		Characteristics: []string{"Има позитивен и негативен полнеж", "Се привлекуваат спротивните", "Се одбиваат истите"},
		Units:           []string{"Кулон (C)", "Ампер (A)", "Волт (V)"},
	},
	"магнетна": {
		Definition:      "Сврзана со магнетни полиња",
		Characteristics: []string{"Има северен и јужен пол", "Се привлекуваат спротивните", "Влијае на движечки полнежи"},
		Units:           []string{"Тесла (T)", "Гаус", "Вебер (Wb)"},
	},
	"осцилација": {
		Definition:      "Периодично движење околу рамнотежна положба",
		Characteristics: []string{"Има период и фреквенција", "Се повторува", "Може да биде задушена"},
		Units:           []string{"Херц (Hz)", "радијан/секунда"},
	},
	"бранови": {
		Definition:      "Пренос на енергија без пренос на материја",
		Characteristics: []string{"Има бранова должина", "Има фреквенција", "Може да се рефлектира"},
		Units:           []string{"метри (м)", "Херц (Hz)", "m/s"},
	},
	"атом": {
		Definition:      "Најмала единица на елемент",
		Characteristics: []string{"Се состои од јадро и електрони", "Има атомска маса", "Може да се јонизира"},
		Units:           []string{"атомска маса единица", "метри"},
	},
}

// LookupKnowledge returns the canonical facts for term, matched
// case-insensitively against the whole term.
func LookupKnowledge(term string) (Knowledge, bool) {
	k, ok := physicsKnowledge[strings.ToLower(term)]
	return k, ok
}

// domainVocabulary is matched case-insensitively against whole words of the
// chapter text.
var domainVocabulary = []string{
	"енергија", "сила", "брзина", "забрзување", "маса", "волумен", "притисок",
	"температура", "топлина", "електрична", "магнетна", "осцилација", "бранови",
	"звук", "светлина", "атом", "нуклеарна", "физика",
	"ќелија", "организам", "орган", "тканина", "систем", "метаболизам", "днк",
	"протеин", "ензим",
	"хемија", "молекула", "соединение", "реакција", "елемент", "период",
	"оксидација", "редукција",
	"принцип", "закон", "теорија", "модел", "процес", "механизам", "функција",
	"структура", "својство", "карактеристика", "ефект", "резултат", "причина",
	"последица",
}

// structuralWords are capitalized words that describe the book layout, not
// its content.
var structuralWords = map[string]bool{
	"текст":    true,
	"страница": true,
	"поглавје": true,
	"слика":    true,
	"табела":   true,
	"пример":   true,
	"задача":   true,
	"text":     true,
	"page":     true,
	"chapter":  true,
	"figure":   true,
	"table":    true,
	"example":  true,
}
