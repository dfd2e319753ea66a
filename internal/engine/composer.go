package engine

import (
	"fmt"
	"strings"

	"github.com/optommarket/shopbot/internal/catalog"
	"github.com/optommarket/shopbot/internal/knowledge"
)

// productBlockLimit caps the product lines included in the grounding block.
const productBlockLimit = 5

// formatProductsBlock renders retrieved products for the grounding block:
// one line per product, `ID | title | price | stock badge`.
func formatProductsBlock(products []catalog.Product) string {
	if len(products) == 0 {
		return "Hozircha mos mahsulotlar topilmadi."
	}

	var lines []string
	for i, p := range products {
		if i >= productBlockLimit {
			break
		}
		status := "❌ Tugagan"
		if p.InStock() {
			status = "✅ Mavjud"
		}
		lines = append(lines, fmt.Sprintf("- ID: %d | %s | %s so'm | %s",
			p.ID, p.Title, catalog.FormatPrice(p.Price), status))
	}
	return strings.Join(lines, "\n")
}

// buildGroundingPrompt assembles the system instruction: company facts, the
// live category list, conversation rules and, when present, the product
// block. It is deterministic for fixed inputs.
func buildGroundingPrompt(kb knowledge.Base, categories string, products []catalog.Product) string {
	company := kb.Company

	var sb strings.Builder
	fmt.Fprintf(&sb, "Siz %q do'konining AI yordamchisisiz.\n\n", company.Name)

	sb.WriteString("## Kompaniya haqida:\n")
	fmt.Fprintf(&sb, "- Tavsif: %s\n", company.Description)
	fmt.Fprintf(&sb, "- Yetkazib berish: %s\n", company.Delivery)
	fmt.Fprintf(&sb, "- To'lov usullari: %s\n", company.Payment)
	fmt.Fprintf(&sb, "- Ish vaqti: %s\n", company.WorkingHours)
	fmt.Fprintf(&sb, "- Telefon: %s\n", company.Phone)
	fmt.Fprintf(&sb, "- Manzil: %s\n", company.Address)
	if company.MinimalOrder != "" {
		fmt.Fprintf(&sb, "- Minimal buyurtma: %s\n", company.MinimalOrder)
	}

	sb.WriteString("\n## Mavjud Kategoriyalar:\n")
	if strings.TrimSpace(categories) == "" {
		sb.WriteString("Ma'lumot yo'q\n")
	} else {
		sb.WriteString(categories + "\n")
	}

	sb.WriteString("\n## Muloqot uslubi:\n")
	sb.WriteString(kb.ToneOfVoice + "\n")

	sb.WriteString(`
## Qoidalar:
1. Har doim O'zbek tilida javob bering
2. Qisqa va aniq javob bering
3. Mahsulot so'ralganda, bazadan topilgan ma'lumotlarni ishlating
4. Narxlarni formatlang (masalan: 150 000 so'm)
5. Agar mahsulot topilmasa, shunga o'xshash mahsulotlarni tavsiya qiling
6. Foydalanuvchiga do'stona munosabatda bo'ling
7. Agar foydalanuvchi "kategoriyalar" haqida so'rasa, yuqoridagi ro'yxatdan foydalaning.
`)

	if len(kb.Capabilities) > 0 {
		sb.WriteString("\n## Imkoniyatlaringiz:\n")
		for _, c := range kb.Capabilities {
			fmt.Fprintf(&sb, "- %s\n", c)
		}
	}

	if len(products) > 0 {
		sb.WriteString("\n## Bazadagi tegishli mahsulotlar:\n")
		sb.WriteString(formatProductsBlock(products))
		sb.WriteString("\n\nFoydalanuvchi so'roviga mos ravishda yuqoridagi mahsulotlardan foydalaning.\n")
	}

	return sb.String()
}
