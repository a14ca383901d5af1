package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/store"
	"github.com/afya-care/monitoring/trackingcodes"
)

var listCodesDoctorId string
var listCodesActiveOnly bool

var codesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracking codes issued by a doctor",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(listCodes) },
}

func listCodes(service trackingcodes.Service) error {
	doctorId, err := primitive.ObjectIDFromHex(listCodesDoctorId)
	if err != nil {
		return fmt.Errorf("invalid doctor id %q", listCodesDoctorId)
	}

	filter := &trackingcodes.Filter{
		DoctorId: &doctorId,
	}
	if listCodesActiveOnly {
		filter.IsActive = &listCodesActiveOnly
	}

	page := store.DefaultPagination().WithLimit(1000)
	codes, err := service.List(context.TODO(), filter, page)
	if err != nil {
		return err
	}

	for _, code := range codes {
		state := "active"
		if !code.IsActive {
			state = "redeemed"
		}
		fmt.Printf("%s %s %s\n", code.Code, state, code.CreatedAt.Format("2006-01-02"))
	}
	fmt.Printf("Found %v codes\n", len(codes))

	return nil
}

func init() {
	codesListCmd.Flags().StringVar(&listCodesDoctorId, "doctor", "", "Id of the issuing doctor")
	codesListCmd.Flags().BoolVar(&listCodesActiveOnly, "active", false, "Only list codes that have not been redeemed")
	_ = codesListCmd.MarkFlagRequired("doctor")
	codesCmd.AddCommand(codesListCmd)
}
