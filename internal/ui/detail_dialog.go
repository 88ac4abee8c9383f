package ui

import (
	"image/color"
	"log"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/pixgrid/pix-catalog/internal/lazyload"
	"github.com/pixgrid/pix-catalog/internal/model"
)

// Dialog size constants
const (
	DetailDialogWidth  float32 = 520
	DetailDialogHeight float32 = 560
)

// ShowProductDetail opens a modal dialog for one product. The hero image
// is a priority asset: a dialog is on screen by definition, so visibility
// gating would only add latency. The image subscription is torn down when
// the dialog closes.
func ShowProductDetail(window fyne.Window, product *model.Product, fetcher lazyload.Fetcher, watcher lazyload.Watcher, placeholderShade color.Color) {
	hero := lazyload.NewLazyImage(fetcher, watcher, lazyload.Descriptor{
		URL:              product.ImageURL,
		AltText:          product.ImageAlt,
		AspectRatio:      product.AspectRatio,
		PlaceholderShade: placeholderShade,
		Priority:         true,
	})
	hero.SetCallbacks(nil, func(err error) {
		log.Printf("Detail image for product %s failed: %v", product.ID, err)
	})

	altLabel := widget.NewLabel(product.ImageAlt)
	altLabel.TextStyle = fyne.TextStyle{Italic: true}
	altLabel.Wrapping = fyne.TextWrapWord

	summaryLabel := widget.NewLabel(product.Summary)
	summaryLabel.Wrapping = fyne.TextWrapWord

	tagsLabel := widget.NewLabel("Tags: " + strings.Join(product.Tags, ", "))

	items := []fyne.CanvasObject{hero, altLabel, summaryLabel, tagsLabel}

	if product.DatasheetURL != "" {
		if link, err := url.Parse(product.DatasheetURL); err == nil {
			items = append(items, widget.NewHyperlink("Datasheet", link))
		} else {
			log.Printf("Invalid datasheet URL for product %s: %v", product.ID, err)
		}
	}

	content := container.NewVBox(items...)

	d := dialog.NewCustom(product.DisplayName(), "Close", content, window)
	d.SetOnClosed(hero.Detach)
	d.Resize(fyne.NewSize(DetailDialogWidth, DetailDialogHeight))
	d.Show()
}
