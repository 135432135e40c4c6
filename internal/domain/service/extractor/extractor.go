// Package extractor разбирает текст объявления о продаже квартиры в
// структурированную запись. Разбор никогда не падает: поле, которое не удалось
// извлечь, остаётся nil.
package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"flat_price/internal/domain/entity"
)

const (
	roomStem = "комнатн"
	// длина грамматического окончания, которое отрезается перед поиском в словаре
	suffixLen = 2
	// пробельные символы в понимании Unicode, а не только ASCII
	spaceClass = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`
)

//nolint:gochecknoglobals
var (
	roomStems = map[string]int{
		"однокомнатн":    1,
		"двухкомнатн":    2,
		"трехкомнатн":    3,
		"трёхкомнатн":    3,
		"четырехкомнатн": 4,
		"четырёхкомнатн": 4,
	}

	districtStems = map[string]entity.District{
		"ленинск":         entity.DistrictLeninsky,
		"орджоникидзевск": entity.DistrictOrdzhonikidzevsky,
		"правобережн":     entity.DistrictPravoberezhny,
	}

	// Порядок важен: совпадение более позднего шаблона перезаписывает район.
	// Пробелом считается и неразрывный пробел, goquery отдаёт &nbsp; как U+00A0.
	districtRegexps = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([\p{L}\p{N}_][^` + spaceClass + `]*)[` + spaceClass + `]+районе(?:[^\p{L}\p{N}_]|$)`),
		regexp.MustCompile(`(?i)([\p{L}\p{N}_][^` + spaceClass + `]*)[` + spaceClass + `]+район(?:[^\p{L}\p{N}_]|$)`),
	}

	totalAreaRegexp   = regexp.MustCompile(`Общая площадь - (\d+\.\d+) кв\.м\.`)
	liveAreaRegexp    = regexp.MustCompile(`жилая площадь - (\d+\.\d+) кв\.м\.`)
	kitchenAreaRegexp = regexp.MustCompile(`кухня - (\d+\.\d+) кв\.м\.`)
	floorRegexp       = regexp.MustCompile(`этаж (\d+)/(\d+)`)
	priceRegexp       = regexp.MustCompile(`Цена - (\d+)`)
)

// Extract разбирает одно описание.
func Extract(text string) entity.RawListing {
	floor, totalFloors := FindFloor(text)

	return entity.RawListing{
		Description: text,
		RoomCount:   FindRoomCount(text),
		District:    FindDistrict(text),
		Floor:       floor,
		TotalFloors: totalFloors,
		TotalArea:   findFloat(totalAreaRegexp, text),
		LiveArea:    findFloat(liveAreaRegexp, text),
		KitchenArea: findFloat(kitchenAreaRegexp, text),
		Price:       FindPrice(text),
	}
}

// FindRoomCount ищет слова вида «двухкомнатная». Если в тексте нет ни одного
// такого слова или они противоречат друг другу, возвращает nil.
func FindRoomCount(text string) *int {
	var found *int

	words := strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})

	for _, word := range words {
		word = strings.ToLower(word)

		i := strings.Index(word, roomStem)
		if i <= 0 || i+len(roomStem) >= len(word) {
			continue
		}

		count, ok := roomStems[trimSuffix(word)]
		if !ok {
			continue
		}

		if found != nil && *found != count {
			return nil
		}

		found = &count
	}

	return found
}

// FindDistrict ищет «<название> районе» и «<название> район».
func FindDistrict(text string) *int {
	var district *int

	for _, re := range districtRegexps {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		district = nil

		if d, ok := districtStems[trimSuffix(strings.ToLower(m[1]))]; ok {
			code := int(d)
			district = &code
		}
	}

	return district
}

// FindFloor извлекает «этаж N/M». Этаж и этажность либо оба заданы, либо оба nil.
func FindFloor(text string) (floor, totalFloors *int) {
	m := floorRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}

	f, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, nil
	}

	t, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, nil
	}

	return &f, &t
}

// FindPrice извлекает «Цена - N».
func FindPrice(text string) *int64 {
	m := priceRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	price, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}

	return &price
}

func findFloat(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}

	return &v
}

func trimSuffix(word string) string {
	runes := []rune(word)
	if len(runes) <= suffixLen {
		return ""
	}

	return string(runes[:len(runes)-suffixLen])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
