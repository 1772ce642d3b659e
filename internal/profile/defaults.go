package profile

const (
	layoutISO      = "2006-01-02"
	layoutUS       = "1/2/2006" // month and day may be unpadded
	layoutSlashISO = "2006/1/2"
	layoutDayFirst = "2/1/2006"
)

func builtins() []Profile {
	return []Profile{
		// Credit cards.
		{
			ID:          "default",
			Name:        "Default Credit Card",
			Description: "Date,Date Processed,Description,Card Member,Account #,Amount",
			Columns:     6,
			Mapping: Mapping{
				Date:          Column(0),
				ProcessedDate: Column(1),
				Description:   Column(2),
				Holder:        Column(3),
				AccountNumber: Column(4),
				Amount:        Column(5),
			},
		},
		{
			ID:          "amex",
			Name:        "American Express",
			Description: "Date,Reference,Description,Amount",
			Columns:     4,
			Mapping: Mapping{
				Date:          Column(0),
				ProcessedDate: Column(0),
				Description:   Column(2),
				Holder:        Literal("American Express"),
				AccountNumber: Column(1),
				Amount:        Column(3),
			},
			Parsers: Parsers{Date: LayoutDate(layoutUS), Amount: NegateAmount},
		},
		{
			ID:          "chase",
			Name:        "Chase",
			Description: "Transaction Date,Post Date,Description,Category,Type,Amount",
			Columns:     6,
			Mapping: Mapping{
				Date:          Column(0),
				ProcessedDate: Column(1),
				Description:   Column(2),
				Holder:        Literal("Chase"),
				AccountNumber: Literal("Chase Card"),
				Amount:        Column(5),
			},
		},
		{
			ID:          "discover",
			Name:        "Discover",
			Description: "Trans. Date,Post Date,Description,Amount,Category",
			Columns:     5,
			Mapping: Mapping{
				Date:          Column(0),
				ProcessedDate: Column(1),
				Description:   Column(2),
				Holder:        Literal("Discover"),
				AccountNumber: Literal("Discover Card"),
				Amount:        Column(3),
			},
		},

		// Canadian debit accounts.
		{
			ID:          "rbc",
			Name:        "RBC Royal Bank",
			Description: "Account Type,Account Number,Transaction Date,Cheque Number,Description,CAD$,USD$",
			Columns:     7,
			Mapping: Mapping{
				Date:          Column(2),
				ProcessedDate: Column(2),
				Description:   Column(4),
				Holder:        Literal("RBC Client"),
				AccountNumber: Column(1),
				Amount:        Column(5),
			},
			Parsers: Parsers{Date: LayoutDate(layoutSlashISO), Amount: PlainAmount},
		},
		{
			ID:          "td",
			Name:        "TD Canada Trust",
			Description: "Date,Transaction,Name,Withdrawn,Deposited,Balance",
			Columns:     6,
			Mapping: Mapping{
				Date:          Column(0),
				ProcessedDate: Column(0),
				Description:   Column(2),
				Holder:        Literal("TD Client"),
				AccountNumber: Literal("TD Account"),
				Amount:        Column(3),
			},
			Parsers: Parsers{Date: LayoutDate(layoutUS), Amount: WithdrawalAmount},
		},
		{
			ID:          "scotiabank",
			Name:        "Scotiabank",
			Description: "Date,Description,Debits,Credits,Balance",
			Columns:     5,
			Mapping: Mapping{
				Date:          Column(0),
				ProcessedDate: Column(0),
				Description:   Column(1),
				Holder:        Literal("Scotiabank Client"),
				AccountNumber: Literal("Scotiabank Account"),
				Amount:        Column(2),
			},
			Parsers: Parsers{Date: LayoutDate(layoutISO), Amount: WithdrawalAmount},
		},
		{
			ID:          "bmo",
			Name:        "BMO Bank of Montreal",
			Description: "Date Posted,Description,Amount,Account Balance",
			Columns:     4,
			Mapping: Mapping{
				Date:          Column(0),
				ProcessedDate: Column(0),
				Description:   Column(1),
				Holder:        Literal("BMO Client"),
				AccountNumber: Literal("BMO Account"),
				Amount:        Column(2),
			},
			Parsers: Parsers{Date: LayoutDate(layoutUS), Amount: PlainAmount},
		},
		{
			ID:          "cibc",
			Name:        "CIBC",
			Description: "Date,Description,Withdrawal,Deposit,Balance",
			Columns:     5,
			Mapping: Mapping{
				Date:          Column(0),
				ProcessedDate: Column(0),
				Description:   Column(1),
				Holder:        Literal("CIBC Client"),
				AccountNumber: Literal("CIBC Account"),
				Amount:        Column(2),
			},
			Parsers: Parsers{Date: LayoutDate(layoutDayFirst), Amount: WithdrawalAmount},
		},
		{
			ID:          "tangerine",
			Name:        "Tangerine Bank",
			Description: "Date,Transaction,Name,Memo,Amount",
			Columns:     5,
			Mapping: Mapping{
				Date:          Column(0),
				ProcessedDate: Column(0),
				Description:   Column(2),
				Holder:        Literal("Tangerine Client"),
				AccountNumber: Literal("Tangerine Account"),
				Amount:        Column(4),
			},
			Parsers: Parsers{Date: LayoutDate(layoutISO), Amount: PlainAmount},
		},
	}
}
