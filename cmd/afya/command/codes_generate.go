package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/trackingcodes"
)

var generateCodeDoctorId string
var generateCodeSentTo string
var generateCodePatientName string

var codesGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tracking code for a doctor",
	Long:  "The generate command issues a new tracking code on behalf of a doctor and emails it to the given contact",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(generateCode) },
}

func generateCode(service trackingcodes.Service) error {
	doctorId, err := primitive.ObjectIDFromHex(generateCodeDoctorId)
	if err != nil {
		return fmt.Errorf("invalid doctor id %q", generateCodeDoctorId)
	}

	code, err := service.Create(context.TODO(), trackingcodes.NewCode{
		DoctorId:    doctorId,
		SentTo:      generateCodeSentTo,
		SentBy:      trackingcodes.ChannelEmail,
		PatientName: generateCodePatientName,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", code.Code)
	return nil
}

func init() {
	codesGenerateCmd.Flags().StringVar(&generateCodeDoctorId, "doctor", "", "Id of the issuing doctor")
	codesGenerateCmd.Flags().StringVar(&generateCodeSentTo, "email", "", "Email address to deliver the code to")
	codesGenerateCmd.Flags().StringVar(&generateCodePatientName, "name", "", "Name of the patient the code is intended for")
	_ = codesGenerateCmd.MarkFlagRequired("doctor")
	codesCmd.AddCommand(codesGenerateCmd)
}
