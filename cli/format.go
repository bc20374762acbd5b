package cli

import (
	"strings"

	"github.com/amirasaad/minibank/pkg/dto"
)

const menuText = `
================ MENU ================
[d]	Deposit
[s]	Withdraw
[e]	Statement
[nc]	New account
[lc]	List accounts
[nu]	New client
[q]	Quit
=> `

func (c *Console) printStatement(st *dto.Statement) {
	c.out.Heading("STATEMENT")
	if len(st.Lines) == 0 {
		c.out.Println("No transactions recorded.")
	}
	for _, l := range st.Lines {
		c.out.Printf("%s:\n\t%s %.2f\n", l.Kind, c.currency, l.Amount)
	}
	c.out.Printf("\nBalance:\n\t%s %.2f\n", c.currency, st.Balance)
	c.out.Println("==========================================")
}

func (c *Console) printAccounts(accounts []dto.AccountSummary) {
	if len(accounts) == 0 {
		c.out.Println("No accounts opened.")
		return
	}
	for _, a := range accounts {
		c.out.Println(strings.Repeat("=", 100))
		c.out.Printf("Branch:\t%s\nAccount:\t%d\nHolder:\t%s\n", a.Branch, a.Number, a.Holder)
	}
}
