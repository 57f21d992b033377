package cli

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/kong"

	actx "go.hackfix.me/kangyang/app/context"
	aerrors "go.hackfix.me/kangyang/app/errors"
	"go.hackfix.me/kangyang/caregiver"
	"go.hackfix.me/kangyang/catalog"
	"go.hackfix.me/kangyang/validate"
)

// The Caregiver command browses caregivers and manages their reviews.
type Caregiver struct {
	Ls struct {
		Type string `help:"Only list caregivers of this service type (home-care, hospital-escort or rehab-nursing)."`
	} `kong:"cmd,help='List caregivers.'"`
	Show struct {
		ID string `arg:"" help:"The caregiver ID."`
	} `kong:"cmd,help='Print a caregiver profile as JSON.'"`
	Reviews struct {
		ID string `arg:"" help:"The caregiver ID."`
	} `kong:"cmd,help='List the reviews of a caregiver, newest first.'"`
	Similar struct {
		ID    string `arg:"" help:"The caregiver ID."`
		Limit int    `default:"3" help:"The maximum number of caregivers to list."`
	} `kong:"cmd,help='List other caregivers of the same service type.'"`
	Review struct {
		ID      string   `arg:"" help:"The caregiver ID."`
		Rating  int      `default:"5" help:"Rating from 1 to 5."`
		Content string   `required:"" help:"The review text."`
		User    string   `default:"匿名用户" help:"The name shown with the review."`
		Tags    []string `help:"Short labels, e.g. 细心,准时."`
	} `kong:"cmd,help='Review a caregiver.'"`
	Like struct {
		ReviewID string `arg:"" help:"The review ID."`
	} `kong:"cmd,help='Mark a review as helpful.'"`
}

// Run the caregiver command.
func (c *Caregiver) Run(kctx *kong.Context, appCtx *actx.Context) error {
	svc := appCtx.Caregivers
	ctx := appCtx.Ctx

	switch subcommand(kctx) {
	case "ls":
		cs, err := svc.Caregivers(ctx, catalog.ServiceType(c.Ls.Type))
		if err != nil {
			return err
		}
		printCaregivers(appCtx, cs)
	case "show":
		cg, err := findCaregiver(appCtx, c.Show.ID)
		if err != nil {
			return err
		}
		return printJSON(appCtx, cg)
	case "reviews":
		if _, err := findCaregiver(appCtx, c.Reviews.ID); err != nil {
			return err
		}
		rs, err := svc.Reviews(ctx, c.Reviews.ID)
		if err != nil {
			return err
		}
		printReviews(appCtx, rs)
	case "similar":
		cg, err := findCaregiver(appCtx, c.Similar.ID)
		if err != nil {
			return err
		}
		cs, err := svc.SimilarCaregivers(ctx, cg.ID, cg.ServiceType, c.Similar.Limit)
		if err != nil {
			return err
		}
		printCaregivers(appCtx, cs)
	case "review":
		return c.addReview(appCtx)
	case "like":
		if _, ok := appCtx.Reviews.FindByID(c.Like.ReviewID); !ok {
			return aerrors.NewRuntimeError(
				fmt.Sprintf("review '%s' doesn't exist", c.Like.ReviewID), nil, "")
		}
		if _, err := svc.LikeReview(ctx, c.Like.ReviewID); err != nil {
			return err
		}
		fmt.Fprintf(appCtx.Stdout, "Marked review '%s' as helpful\n", c.Like.ReviewID)
	}

	return nil
}

func (c *Caregiver) addReview(appCtx *actx.Context) error {
	cg, err := findCaregiver(appCtx, c.Review.ID)
	if err != nil {
		return err
	}

	form := validate.ReviewForm{
		Rating: c.Review.Rating, Content: c.Review.Content, Tags: c.Review.Tags,
	}
	if err := validate.Struct(form); err != nil {
		return aerrors.NewRuntimeError("invalid review", err, "")
	}

	_, err = appCtx.Caregivers.AddReview(appCtx.Ctx, caregiver.NewReview{
		CaregiverID: cg.ID,
		UserName:    c.Review.User,
		Rating:      form.Rating,
		Content:     form.Content,
		Tags:        form.Tags,
		ServiceType: cg.ServiceType,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(appCtx.Stdout, "Reviewed %s\n", cg.Name)

	return nil
}

func findCaregiver(appCtx *actx.Context, id string) (*catalog.Caregiver, error) {
	cg, ok, err := appCtx.Caregivers.CaregiverByID(appCtx.Ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, aerrors.NewRuntimeError(
			fmt.Sprintf("caregiver '%s' doesn't exist", id), nil,
			"List the available caregivers with 'caregiver ls'.")
	}

	return cg, nil
}

func printCaregivers(appCtx *actx.Context, cs []catalog.Caregiver) {
	if len(cs) == 0 {
		return
	}

	data := make([][]string, len(cs))
	for i, cg := range cs {
		data[i] = []string{
			cg.ID, cg.Name, string(cg.ServiceType), string(cg.Qualification),
			strconv.FormatFloat(cg.Rating, 'f', 1, 64),
		}
	}

	header := []string{"ID", "Name", "Service", "Qualification", "Rating"}
	renderTable(appCtx.Stdout, header, data)
}

func printReviews(appCtx *actx.Context, rs []catalog.CaregiverReview) {
	if len(rs) == 0 {
		return
	}

	data := make([][]string, len(rs))
	for i, r := range rs {
		data[i] = []string{
			r.ID, r.CreatedAt.Format("2006-01-02"), r.UserName,
			strconv.Itoa(r.Rating), strconv.Itoa(r.HelpfulCount), r.Content,
		}
	}

	header := []string{"ID", "Date", "User", "Rating", "Helpful", "Content"}
	renderTable(appCtx.Stdout, header, data)
}

// The Package command browses service packages.
type Package struct {
	Ls    struct{} `kong:"cmd,help='List service packages.'"`
	Price struct {
		ID            string `arg:"" help:"The package ID."`
		Qualification string `arg:"" enum:"personal-care-worker,home-worker,registered-nurse" help:"The caregiver qualification. One of: ${enum}"`
	} `kong:"cmd,help='Print the price of a package for a caregiver qualification.'"`
}

// Run the package command.
func (c *Package) Run(kctx *kong.Context, appCtx *actx.Context) error {
	svc := appCtx.Caregivers

	switch subcommand(kctx) {
	case "ls":
		pkgs, err := svc.ServicePackages(appCtx.Ctx)
		if err != nil {
			return err
		}
		data := make([][]string, len(pkgs))
		for i, p := range pkgs {
			data[i] = []string{p.ID, p.Name, string(p.ServiceType), p.Duration}
		}
		header := []string{"ID", "Name", "Service", "Duration"}
		renderTable(appCtx.Stdout, header, data)
	case "price":
		tier, ok, err := svc.PackagePrice(appCtx.Ctx, c.Price.ID,
			catalog.Qualification(c.Price.Qualification))
		if err != nil {
			return err
		}
		if !ok {
			return aerrors.NewRuntimeError(
				fmt.Sprintf("package '%s' doesn't exist", c.Price.ID), nil,
				"List the available packages with 'package ls'.")
		}
		fmt.Fprintf(appCtx.Stdout, "%.2f/%s\n", tier.Price, tier.Unit)
	}

	return nil
}
