package panel

// View receives every visible change. The controller calls it under its own
// lock, one call at a time, so implementations need no locking of their own.
type View interface {
	SetTitle(title string)
	ShowLoading()
	ShowEmpty()
	ShowLoadError(err *RequestError)
	RenderRows(rows []Row)
	ShowAlert(alert Alert)
	// SetSubmitBusy disables the submit control and shows a busy label
	SetSubmitBusy(busy bool)
	// SetToggleBusy shows a spinner on the row's toggle control
	SetToggleBusy(index int, busy bool)
	SetFormVisible(visible bool, toggle Button)
	ResetForm()
	FocusField(field string)
}
