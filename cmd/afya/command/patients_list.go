package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/patients"
	"github.com/afya-care/monitoring/pointer"
	"github.com/afya-care/monitoring/store"
)

var listPatientsDoctorId string

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "Manage patients",
}

var patientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patients associated with a doctor",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(listPatients) },
}

func listPatients(service patients.Service) error {
	filter := &patients.Filter{}
	if listPatientsDoctorId != "" {
		doctorId, err := primitive.ObjectIDFromHex(listPatientsDoctorId)
		if err != nil {
			return fmt.Errorf("invalid doctor id %q", listPatientsDoctorId)
		}
		filter.DoctorId = &doctorId
	}

	page := store.DefaultPagination().WithLimit(1000)
	list, err := service.List(context.TODO(), filter, page)
	if err != nil {
		return err
	}

	for _, patient := range list {
		fmt.Printf("%s %s %s\n", patient.Id.Hex(), pointer.ToString(patient.FullName), patient.MonitoringMode)
	}
	fmt.Printf("Found %v patients\n", len(list))

	return nil
}

func init() {
	patientsListCmd.Flags().StringVar(&listPatientsDoctorId, "doctor", "", "Only list patients of this doctor")
	patientsCmd.AddCommand(patientsListCmd)
	rootCmd.AddCommand(patientsCmd)
}
