package vitibrasil

// trimmed-down copies of the portal's real page structure

const productionPage = `<html><body>
<table class="tb_base tb_dados">
	<thead>
		<tr>
			<th>Produto</th>
			<th>Quantidade (L.)</th>
		</tr>
	</thead>
	<tbody>
		<tr>
			<td class="tb_item">VINHO DE MESA</td>
			<td class="tb_item">215.557.931</td>
		</tr>
		<tr>
			<td class="tb_subitem">Tinto</td>
			<td class="tb_subitem">175.267.437</td>
		</tr>
		<tr>
			<td class="tb_subitem">Branco</td>
			<td class="tb_subitem">40.290.494</td>
		</tr>
		<tr>
			<td class="tb_item">SUCO</td>
			<td class="tb_item">-</td>
		</tr>
		<tr>
			<td class="tb_subitem">Suco de uva integral</td>
			<td class="tb_subitem">-</td>
		</tr>
	</tbody>
	<tfoot class="tb_total">
		<tr>
			<td>Total</td>
			<td>215.557.931</td>
		</tr>
	</tfoot>
</table>
</body></html>`

const processingPage = `<html><body>
<table class="tb_base tb_dados">
	<thead>
		<tr>
			<th>Cultivar</th>
			<th>Quantidade (Kg)</th>
		</tr>
	</thead>
	<tbody>
		<tr>
			<td class="tb_item">TINTAS</td>
			<td class="tb_item">35.881.118</td>
		</tr>
		<tr>
			<td class="tb_subitem">Alicante Bouschet</td>
			<td class="tb_subitem">4.108.858</td>
		</tr>
		<tr>
			<td class="tb_subitem">Ancelota</td>
			<td class="tb_subitem">-</td>
		</tr>
	</tbody>
</table>
</body></html>`

const importPage = `<html><body>
<table class="tb_base tb_dados">
	<thead>
		<tr>
			<th>Países</th>
			<th>Quantidade (Kg)</th>
			<th>Valor (US$)</th>
		</tr>
	</thead>
	<tbody>
		<tr>
			<td>Argentina</td>
			<td>14.952.789</td>
			<td>34.269.187</td>
		</tr>
		<tr>
			<td>Chile</td>
			<td>39.078.278</td>
			<td>110.811.734</td>
		</tr>
		<tr>
			<td>Afeganistão</td>
			<td>-</td>
			<td>-</td>
		</tr>
		<tr>
			<td>Total</td>
			<td>54.031.067</td>
			<td>145.080.921</td>
		</tr>
	</tbody>
</table>
</body></html>`

const commercializationPage = `<html><body>
<table class="tb_base tb_dados">
	<thead>
		<tr>
			<th>Produto</th>
			<th>Quantidade (L.)</th>
		</tr>
	</thead>
	<tbody>
		<tr>
			<td class="tb_item">VINHO DE MESA</td>
			<td class="tb_item">187.016.848</td>
		</tr>
		<tr>
			<td class="tb_subitem">Tinto</td>
			<td class="tb_subitem">165.097.539</td>
		</tr>
		<tr>
			<td class="tb_item">ESPUMANTES</td>
			<td class="tb_item">-</td>
		</tr>
		<tr>
			<td class="tb_subitem">Espumante Moscatel</td>
			<td class="tb_subitem">-</td>
		</tr>
	</tbody>
</table>
</body></html>`

const exportPage = `<html><body>
<table class="tb_base tb_dados">
	<thead>
		<tr>
			<th>Países</th>
			<th>Quantidade (Kg)</th>
			<th>Valor (US$)</th>
		</tr>
	</thead>
	<tbody>
		<tr>
			<td>Paraguai</td>
			<td>2.578.529</td>
			<td>4.649.134</td>
		</tr>
		<tr>
			<td>Haiti</td>
			<td>-</td>
			<td>-</td>
		</tr>
		<tr>
			<td>Total</td>
			<td>2.578.529</td>
			<td>4.649.134</td>
		</tr>
	</tbody>
</table>
</body></html>`

// the page the portal serves when the parameters select a different
// report, detectable only through its header signature
const wrongTablePage = `<html><body>
<table class="tb_base tb_dados">
	<thead>
		<tr>
			<th>Sem definição</th>
			<th>Quantidade</th>
		</tr>
	</thead>
	<tbody>
		<tr>
			<td>linha</td>
			<td>1</td>
		</tr>
	</tbody>
</table>
</body></html>`
