package materials

import (
	"github.com/fieldops/planboard/core/hierarchy"
	"github.com/fieldops/planboard/core/model"
)

// NoArticle is the sentinel article number for parts without one.
const NoArticle = "N/A"

// Requirement is one line of the purchasing forecast.
type Requirement struct {
	ArticleNumber string  `json:"article_number"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
}

// RequiredParts rolls up the part demand for all scheduled visits. For
// every non-package assignment whose target resolves to an asset, all
// part descendants are collected and their quantities accumulated per
// article number in first-seen order. Parts without an article number
// surface under the N/A sentinel and are never merged across different
// part names. A missing quantity counts as one.
func RequiredParts(index *hierarchy.Index, assignments []model.Assignment) []Requirement {
	var out []Requirement
	pos := map[string]int{} // article number -> index in out

	for _, a := range assignments {
		if a.IsPackage {
			continue
		}
		if _, ok := index.Get(a.TargetID); !ok {
			continue
		}
		for _, p := range index.CollectDescendantParts(a.TargetID) {
			article := ""
			qty := 1.0
			if p.Part != nil {
				article = p.Part.ArticleNumber
				if p.Part.Quantity > 0 {
					qty = p.Part.Quantity
				}
			}
			if article == "" {
				out = append(out, Requirement{ArticleNumber: NoArticle, Name: p.Name, Quantity: qty})
				continue
			}
			if i, ok := pos[article]; ok {
				out[i].Quantity += qty
				continue
			}
			pos[article] = len(out)
			out = append(out, Requirement{ArticleNumber: article, Name: p.Name, Quantity: qty})
		}
	}
	return out
}
