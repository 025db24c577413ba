package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/brunotrento11/Teste-sub000/internal/entity"
	"github.com/brunotrento11/Teste-sub000/internal/search"
)

func printRows(w io.Writer, rows []entity.AssetSearchRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tTYPE\tNAME\tRISK\tCATEGORY\tRATE\tMATURITY")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.AssetCode,
			r.AssetType,
			r.DisplayName,
			intOrDash(r.RiskScore),
			stringOrDash(r.RiskCategory),
			percentOrDash(r.Profitability),
			dateOrDash(r),
		)
	}
	_ = tw.Flush()
}

func printSuggestions(w io.Writer, suggestions []search.CachedAsset) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprint(w, "suggestions:")
	for _, s := range suggestions {
		fmt.Fprintf(w, " %s", s.Ticker)
	}
	fmt.Fprintln(w)
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func stringOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func percentOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64) + "%"
}

func dateOrDash(r entity.AssetSearchRow) string {
	if r.MaturityDate == nil {
		return "-"
	}
	return r.MaturityDate.Format("2006-01-02")
}
