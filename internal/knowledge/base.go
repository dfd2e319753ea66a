package knowledge

// CompanyInfo holds the static storefront facts used to ground answers.
type CompanyInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Delivery     string `json:"delivery"`
	Payment      string `json:"payment"`
	WorkingHours string `json:"working_hours"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	MinimalOrder string `json:"minimal_order"`
}

// Base is the full knowledge base supplied to the response composer.
type Base struct {
	Company      CompanyInfo `json:"company_info"`
	ToneOfVoice  string      `json:"tone_of_voice"`
	Greeting     string      `json:"greeting"`
	Capabilities []string    `json:"capabilities"`
}

// Defaults returns the built-in knowledge base used when no file exists.
func Defaults() Base {
	return Base{
		Company: CompanyInfo{
			Name:         "OptomMarket",
			Description:  "Optom va chakana savdo do'koni",
			Delivery:     "Toshkent bo'ylab bepul yetkazib berish. Viloyatlarga pochta orqali.",
			Payment:      "Naqd, karta (Uzcard, Humo), Click, Payme",
			WorkingHours: "Dushanba - Shanba: 9:00 - 18:00",
			Phone:        "+998 97 477 12 29",
			Address:      "Toshkent shahri",
			MinimalOrder: "Minimal buyurtma miqdori yoki summasi yo'q. Istalgan miqdorda (1 dona bo'lsa ham) xarid qilishingiz mumkin.",
		},
		ToneOfVoice: "Professional, do'stona va yordamga tayyor sotuvchi konsultant. O'zbek tilida muloqot.",
		Greeting:    "Assalomu alaykum! OptomMarket botiga xush kelibsiz. Sizga qanday yordam bera olaman?",
		Capabilities: []string{
			"Mahsulotlarni qidirish va tavsiya qilish",
			"Narxlar haqida ma'lumot berish",
			"Buyurtma holatini tekshirish",
			"Yetkazib berish va to'lov haqida ma'lumot",
		},
	}
}

func clone(b Base) Base {
	c := b
	c.Capabilities = append([]string(nil), b.Capabilities...)
	return c
}
