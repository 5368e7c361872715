package scenario

// builtinProfiles returns the scenario profiles that ship with the
// engine. Rates are per-run totals except ordersPerDay (scaled by the
// config's volume multiplier and the date range) and the per-parent
// ratios (branchesPerCompany, staffPerBranch, addressesPerCompany,
// maintenancePerWeek).
func builtinProfiles() []*Profile {
	return []*Profile{
		{
			Name:        "normal-ops",
			Description: "Steady-state operations with a small anomaly background.",
			EntityRates: EntityVolume{
				RateUsers:               20,
				RateCompanies:           100,
				RateBranchesPerCompany:  2,
				RateStaffPerBranch:      1.5,
				RateAddressesPerCompany: 1.5,
				RateProducts:            200,
				RateOrdersPerDay:        50,
				RateMaintenancePerWeek:  10,
			},
			Distribution: DistributionConfig{
				OrderStatus: map[string]float64{
					"pending": 0.10, "confirmed": 0.20, "shipped": 0.20,
					"delivered": 0.45, "cancelled": 0.05,
				},
				PaymentStatus: map[string]float64{
					"paid": 0.65, "pending": 0.25, "overdue": 0.10,
				},
				Region: map[string]float64{
					"north": 0.30, "south": 0.20, "east": 0.25, "west": 0.25,
				},
				ProductPopularity: PopularityZipf,
			},
			AnomalyRate: 0.02,
		},
		{
			Name:        "peak-season",
			Description: "Holiday peak: order volume more than doubles and fulfillment strains.",
			EntityRates: EntityVolume{
				RateUsers:               25,
				RateCompanies:           120,
				RateBranchesPerCompany:  2,
				RateStaffPerBranch:      1.5,
				RateAddressesPerCompany: 1.5,
				RateProducts:            250,
				RateOrdersPerDay:        120,
				RateMaintenancePerWeek:  8,
			},
			Distribution: DistributionConfig{
				OrderStatus: map[string]float64{
					"pending": 0.15, "confirmed": 0.25, "shipped": 0.25,
					"delivered": 0.30, "cancelled": 0.05,
				},
				PaymentStatus: map[string]float64{
					"paid": 0.55, "pending": 0.35, "overdue": 0.10,
				},
				Region: map[string]float64{
					"north": 0.30, "south": 0.20, "east": 0.25, "west": 0.25,
				},
				ProductPopularity: PopularityZipf,
			},
			AnomalyRate: 0.05,
		},
		{
			Name:        "outage",
			Description: "Fulfillment outage: anomalies cluster in temporal bursts.",
			EntityRates: EntityVolume{
				RateUsers:               20,
				RateCompanies:           100,
				RateBranchesPerCompany:  2,
				RateStaffPerBranch:      1.5,
				RateAddressesPerCompany: 1.5,
				RateProducts:            200,
				RateOrdersPerDay:        40,
				RateMaintenancePerWeek:  15,
			},
			Distribution: DistributionConfig{
				OrderStatus: map[string]float64{
					"pending": 0.20, "confirmed": 0.15, "shipped": 0.15,
					"delivered": 0.30, "cancelled": 0.20,
				},
				PaymentStatus: map[string]float64{
					"paid": 0.45, "pending": 0.30, "overdue": 0.25,
				},
				Region: map[string]float64{
					"north": 0.30, "south": 0.20, "east": 0.25, "west": 0.25,
				},
				ProductPopularity: PopularityZipf,
			},
			AnomalyRate: 0.25,
			Anomalies: &AnomalyConfig{
				Rate:       0.25,
				Types:      []string{AnomalyDeliveryDelay, AnomalyOrderCancellation},
				Clustering: ClusterBurst,
			},
		},
		{
			Name:        "rapid-growth",
			Description: "Aggressive customer acquisition: large company base, rising order volume.",
			EntityRates: EntityVolume{
				RateUsers:               50,
				RateCompanies:           250,
				RateBranchesPerCompany:  3,
				RateStaffPerBranch:      2,
				RateAddressesPerCompany: 2,
				RateProducts:            300,
				RateOrdersPerDay:        90,
				RateMaintenancePerWeek:  12,
			},
			Distribution: DistributionConfig{
				OrderStatus: map[string]float64{
					"pending": 0.15, "confirmed": 0.25, "shipped": 0.20,
					"delivered": 0.35, "cancelled": 0.05,
				},
				PaymentStatus: map[string]float64{
					"paid": 0.60, "pending": 0.30, "overdue": 0.10,
				},
				Region: map[string]float64{
					"north": 0.25, "south": 0.25, "east": 0.25, "west": 0.25,
				},
				ProductPopularity: PopularityZipf,
			},
			AnomalyRate: 0.03,
		},
		{
			Name:        "data-quality-audit",
			Description: "Small volumes with a very high anomaly rate, for exercising validation and cleanup tooling.",
			EntityRates: EntityVolume{
				RateUsers:               10,
				RateCompanies:           30,
				RateBranchesPerCompany:  1,
				RateStaffPerBranch:      1,
				RateAddressesPerCompany: 1,
				RateProducts:            50,
				RateOrdersPerDay:        15,
				RateMaintenancePerWeek:  5,
			},
			Distribution: DistributionConfig{
				OrderStatus: map[string]float64{
					"pending": 0.10, "confirmed": 0.20, "shipped": 0.20,
					"delivered": 0.40, "cancelled": 0.10,
				},
				PaymentStatus: map[string]float64{
					"paid": 0.50, "pending": 0.30, "overdue": 0.20,
				},
				Region: map[string]float64{
					"north": 0.25, "south": 0.25, "east": 0.25, "west": 0.25,
				},
				ProductPopularity: PopularityUniform,
			},
			AnomalyRate: 0.40,
			Anomalies: &AnomalyConfig{
				Rate:       0.40,
				Types:      []string{AnomalyPaymentDelay, AnomalyDeliveryDelay, AnomalyOrderCancellation},
				Clustering: ClusterSpread,
			},
		},
	}
}
