// Package regions holds the fixed region to district vocabulary used to
// validate trip routes. The data is static configuration: district names are
// only meaningful inside their region, and comparisons are case-insensitive.
package regions

import "strings"

var vocabulary = map[string][]string{
	"Toshkent": {
		"Bektemir", "Chilonzor", "Mirobod", "Mirzo Ulug'bek", "Olmazor",
		"Sergeli", "Shayxontohur", "Uchtepa", "Yakkasaroy", "Yashnobod",
		"Yunusobod", "Markaz",
	},
	"Toshkent viloyati": {
		"Angren", "Bekobod", "Chirchiq", "Gazalkent", "Keles", "Nurafshon",
		"Olmaliq", "Parkent", "Piskent", "Yangiyo'l",
	},
	"Andijon": {
		"Andijon shahri", "Asaka", "Baliqchi", "Marhamat", "Paxtaobod",
		"Shahrixon", "Xonobod", "Markaz",
	},
	"Buxoro": {
		"Buxoro shahri", "G'ijduvon", "Kogon", "Olot", "Romitan",
		"Shofirkon", "Vobkent", "Markaz",
	},
	"Farg'ona": {
		"Farg'ona shahri", "Beshariq", "Marg'ilon", "Qo'qon", "Quva",
		"Rishton", "Oltiariq", "Markaz",
	},
	"Jizzax": {
		"Jizzax shahri", "G'allaorol", "Do'stlik", "Paxtakor", "Zomin",
		"Markaz",
	},
	"Namangan": {
		"Namangan shahri", "Chortoq", "Chust", "Kosonsoy", "Pop",
		"To'raqo'rg'on", "Uchqo'rg'on", "Markaz",
	},
	"Navoiy": {
		"Navoiy shahri", "Karmana", "Konimex", "Nurota", "Qiziltepa",
		"Zarafshon", "Markaz",
	},
	"Qashqadaryo": {
		"Qarshi", "G'uzor", "Kitob", "Koson", "Muborak", "Shahrisabz",
		"Yakkabog'", "Markaz",
	},
	"Qoraqalpog'iston": {
		"Nukus", "Beruniy", "Chimboy", "Mo'ynoq", "Qo'ng'irot", "To'rtko'l",
		"Xo'jayli", "Markaz",
	},
	"Samarqand": {
		"Samarqand shahri", "Bulung'ur", "Ishtixon", "Jomboy", "Kattaqo'rg'on",
		"Oqdaryo", "Urgut", "Markaz", "Center",
	},
	"Sirdaryo": {
		"Guliston", "Boyovut", "Sirdaryo shahri", "Shirin", "Yangiyer",
		"Markaz",
	},
	"Surxondaryo": {
		"Termiz", "Boysun", "Denov", "Jarqo'rg'on", "Sherobod", "Sho'rchi",
		"Markaz",
	},
	"Xorazm": {
		"Urganch", "Bog'ot", "Gurlan", "Hazorasp", "Xiva", "Shovot",
		"Markaz",
	},
}

// Names returns the region names in the vocabulary. Order is unspecified.
func Names() []string {
	names := make([]string, 0, len(vocabulary))
	for name := range vocabulary {
		names = append(names, name)
	}
	return names
}

// Districts returns the district names of a region, matched
// case-insensitively. The second result is false for unknown regions.
func Districts(region string) ([]string, bool) {
	for name, districts := range vocabulary {
		if strings.EqualFold(name, region) {
			return districts, true
		}
	}
	return nil, false
}

// ValidRegion reports whether the region name is in the vocabulary.
func ValidRegion(region string) bool {
	_, ok := Districts(region)
	return ok
}

// ValidRoute reports whether the district belongs to the named region. Both
// comparisons are case-insensitive.
func ValidRoute(region, district string) bool {
	districts, ok := Districts(region)
	if !ok {
		return false
	}
	for _, d := range districts {
		if strings.EqualFold(d, district) {
			return true
		}
	}
	return false
}
