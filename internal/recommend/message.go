package recommend

import (
	"strings"

	"github.com/couchcryptid/festival-guide/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func suggestion(lang domain.Language) string {
	if lang == domain.Korean {
		return "다른 지역이나 '문화예술', '지역특산물' 같은 축제 유형으로 다시 물어보세요."
	}
	return "Try another region, or a festival type such as culture or food."
}

func printer(lang domain.Language) *message.Printer {
	if lang == domain.Korean {
		return message.NewPrinter(language.Korean)
	}
	return message.NewPrinter(language.English)
}

// Message renders a result as chat text in the result's language.
func Message(res Result) string {
	p := printer(res.Language)
	if !res.Found || res.Pick == nil {
		return notFoundMessage(p, res)
	}

	rec := res.Pick
	var b strings.Builder
	if res.Language == domain.Korean {
		b.WriteString("🎉 찾았어요!\n\n")
		b.WriteString(p.Sprintf("**[%s]**\n", rec.Name))
		b.WriteString(p.Sprintf("- 📍 %s (%s)\n", rec.Region.Label(domain.Korean), rec.Place))
		b.WriteString(p.Sprintf("- 🎨 %s\n", rec.Category))
		if rec.Month > 0 {
			b.WriteString(p.Sprintf("- 📅 %d월\n", rec.Month))
		}
		b.WriteString(p.Sprintf("- 👥 방문객: %d명\n\n", rec.VisitorCount))
		b.WriteString("지도 탭에서 위치를 확인해보세요!")
		return b.String()
	}

	b.WriteString("🎉 Found it!\n\n")
	b.WriteString(p.Sprintf("**[%s]**\n", rec.Name))
	b.WriteString(p.Sprintf("- 📍 %s (%s)\n", rec.Region.Label(domain.English), rec.Place))
	b.WriteString(p.Sprintf("- 🎨 %s\n", rec.Category))
	if rec.Month > 0 {
		b.WriteString(p.Sprintf("- 📅 Month: %d\n", rec.Month))
	}
	b.WriteString(p.Sprintf("- 👥 Visitors: %d\n\n", rec.VisitorCount))
	b.WriteString("Check the map for details!")
	return b.String()
}

func notFoundMessage(p *message.Printer, res Result) string {
	if res.Language == domain.Korean {
		head := "데이터베이스에서 찾을 수 없습니다."
		if region := res.RegionLabel(); region != "" {
			head = p.Sprintf("%s 지역에서 조건에 맞는 축제를 찾을 수 없습니다.", region)
		}
		return head + "\n" + res.Suggestion
	}
	head := "Not found in database."
	if region := res.RegionLabel(); region != "" {
		head = p.Sprintf("No matching festivals found in %s.", region)
	}
	return head + "\n" + res.Suggestion
}
